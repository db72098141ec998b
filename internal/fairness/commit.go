package fairness

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Commitment is an HMAC-SHA256 tag over the committed message.
type Commitment []byte

// String returns the lowercase hex encoding shown as "HMAC: ...".
func (c Commitment) String() string {
	return hex.EncodeToString(c)
}

// ParseCommitment decodes a hex commitment.
func ParseCommitment(s string) (Commitment, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("decode commitment: %w", err)
	}
	if len(b) != sha256.Size {
		return nil, fmt.Errorf("decode commitment: want %d bytes, got %d", sha256.Size, len(b))
	}
	return Commitment(b), nil
}

// Commit computes HMAC-SHA256(key, message).
func Commit(key Key, message []byte) Commitment {
	mac := hmac.New(sha256.New, key)
	mac.Write(message)
	return Commitment(mac.Sum(nil))
}

// Verify reports whether c is the commitment of message under key. The
// comparison is constant-time.
func Verify(key Key, message []byte, c Commitment) bool {
	return hmac.Equal(Commit(key, message), c)
}
