// Package rules derives who beats whom for any odd-sized cyclic list of moves.
package rules

import (
	"fmt"
	"strings"
)

// MinMoves is the smallest playable move list.
const MinMoves = 3

// ReservedChars may not appear in labels. They separate the fields of a
// committed message, which must decode to exactly one move list.
const ReservedChars = "|,"

// UsageError reports a move list that cannot be played.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return "invalid moves: " + e.Reason
}

// MoveList is an ordered list of distinct move labels. Users refer to moves by
// their 1-based position.
type MoveList []string

// ParseMoves validates labels as a playable move list. The count must be odd and
// at least MinMoves, and labels must be non-blank, free of ReservedChars and
// unique ignoring case.
func ParseMoves(labels []string) (MoveList, error) {
	n := len(labels)
	if n < MinMoves || n%2 == 0 {
		return nil, &UsageError{Reason: fmt.Sprintf("need an odd number of moves (>= %d), got %d", MinMoves, n)}
	}

	seen := make(map[string]int, n)
	moves := make(MoveList, n)
	for i, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			return nil, &UsageError{Reason: fmt.Sprintf("move %d is blank", i+1)}
		}
		if strings.ContainsAny(label, ReservedChars) {
			return nil, &UsageError{Reason: fmt.Sprintf("move %q contains one of %q", label, ReservedChars)}
		}
		key := strings.ToLower(label)
		if prev, ok := seen[key]; ok {
			return nil, &UsageError{Reason: fmt.Sprintf("move %q repeats move %d", label, prev)}
		}
		seen[key] = i + 1
		moves[i] = label
	}

	return moves, nil
}

// String joins the labels with spaces.
func (m MoveList) String() string {
	return strings.Join(m, " ")
}
