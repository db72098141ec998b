package fairness

import (
	"fmt"
	"strings"
)

// Scheme selects which bytes the computer commits to.
type Scheme string

const (
	// SchemeMove commits to the computer's move label alone.
	SchemeMove Scheme = "move"
	// SchemeBound commits to "<round id>|<move label>|<moves joined by ','>",
	// so a disclosed commitment cannot be replayed in another round or game.
	SchemeBound Scheme = "bound"
)

// ParseScheme validates a scheme name. The empty string selects SchemeMove.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(strings.ToLower(strings.TrimSpace(s))) {
	case "", SchemeMove:
		return SchemeMove, nil
	case SchemeBound:
		return SchemeBound, nil
	default:
		return "", fmt.Errorf("unknown commitment scheme %q (want %q or %q)", s, SchemeMove, SchemeBound)
	}
}

// Message builds the committed bytes for a round. Move labels never contain
// '|' or ',' (see rules.ReservedChars), so a bound message names one move list.
func Message(scheme Scheme, roundID, label string, moves []string) []byte {
	if scheme == SchemeBound {
		return []byte(roundID + "|" + label + "|" + strings.Join(moves, ","))
	}
	return []byte(label)
}
