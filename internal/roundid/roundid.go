// Package roundid generates time-ordered identifiers for game rounds.
package roundid

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Crockford's base32 alphabet, lowercase.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded round ID.
const Length = 26

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// Generator creates round IDs from a random source.
type Generator struct {
	source io.Reader
}

// NewGenerator creates a generator. A nil source means crypto/rand.
func NewGenerator(source io.Reader) *Generator {
	if source == nil {
		source = rand.Reader
	}
	return &Generator{source: source}
}

// New returns a UUIDv7 encoded as 26 lowercase base32 characters, so IDs sort
// by creation time.
func (g *Generator) New() (string, error) {
	id, err := uuid.NewV7FromReader(g.source)
	if err != nil {
		return "", fmt.Errorf("generate round id: %w", err)
	}
	return encoding.EncodeToString(id[:]), nil
}

// Validate checks that id is a well-formed round ID.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("round ID must be exactly %d characters, got %d", Length, len(id))
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	if _, err := encoding.DecodeString(id); err != nil {
		return fmt.Errorf("decode round ID: %w", err)
	}
	return nil
}
