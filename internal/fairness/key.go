// Package fairness implements the commit-reveal protocol that lets a player
// check, after a round, that the computer's move was fixed before they moved.
//
// Each round the computer draws a fresh Key, publishes Commit(key, message)
// and only discloses the key once the round is resolved. Anyone holding the
// key and the message can recompute the commitment with Verify.
package fairness

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// KeySize is the secret key length in bytes (256 bits).
const KeySize = 32

// ErrEntropyUnavailable is returned when the secure random source fails.
// There is no fallback to a weaker source.
var ErrEntropyUnavailable = errors.New("secure randomness unavailable")

// Key is a round's secret HMAC key.
type Key []byte

// String returns the lowercase hex encoding used when the key is disclosed.
func (k Key) String() string {
	return hex.EncodeToString(k)
}

// Wipe zeroes the key in place.
func (k Key) Wipe() {
	clear(k)
}

// ParseKey decodes a disclosed hex key.
func ParseKey(s string) (Key, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode key: %w", err)
	}
	if len(b) == 0 {
		return nil, errors.New("decode key: empty")
	}
	return Key(b), nil
}

// KeyGenerator draws keys from a random source.
type KeyGenerator struct {
	source io.Reader
}

// NewKeyGenerator creates a generator reading from source. A nil source means
// crypto/rand.
func NewKeyGenerator(source io.Reader) *KeyGenerator {
	if source == nil {
		source = rand.Reader
	}
	return &KeyGenerator{source: source}
}

// Generate returns a new KeySize-byte key.
func (g *KeyGenerator) Generate() (Key, error) {
	key := make(Key, KeySize)
	if _, err := io.ReadFull(g.source, key); err != nil {
		key.Wipe()
		return nil, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	return key, nil
}

// GenerateKey returns a new key from crypto/rand.
func GenerateKey() (Key, error) {
	return NewKeyGenerator(nil).Generate()
}
