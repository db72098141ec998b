// Package randutil provides the sources used to pick the computer's move.
package randutil

import (
	crand "crypto/rand"
	"fmt"
	"io"
	"math/big"
	rand "math/rand/v2"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// Source returns a uniformly distributed integer in [0, n).
type Source interface {
	IntN(n int) (int, error)
}

type cryptoSource struct {
	r io.Reader
}

// Crypto returns a Source backed by crypto/rand.
func Crypto() Source {
	return NewCrypto(crand.Reader)
}

// NewCrypto returns a Source drawing unbiased values from r.
func NewCrypto(r io.Reader) Source {
	return cryptoSource{r: r}
}

func (s cryptoSource) IntN(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("invalid range %d", n)
	}
	v, err := crand.Int(s.r, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("draw random int: %w", err)
	}
	return int(v.Int64()), nil
}

type seededSource struct {
	rng *rand.Rand
}

// Seeded returns a reproducible Source for tests and simulations. It is not
// suitable for real play.
func Seeded(seed int64) Source {
	return seededSource{rng: New(seed)}
}

func (s seededSource) IntN(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("invalid range %d", n)
	}
	return s.rng.IntN(n), nil
}

// New returns a *rand.Rand seeded deterministically from seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
