package rules

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMoveIndex is returned when a move index falls outside 1..N.
var ErrInvalidMoveIndex = errors.New("invalid move index")

// Outcome is the result of one move played against another.
type Outcome int

const (
	Draw Outcome = iota
	Win
	Lose
)

func (o Outcome) String() string {
	switch o {
	case Draw:
		return "Draw"
	case Win:
		return "Win"
	case Lose:
		return "Lose"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Message is the end-of-round text for an outcome seen from the user's side.
func (o Outcome) Message() string {
	switch o {
	case Win:
		return "You win!"
	case Lose:
		return "You lose!"
	default:
		return "It's a draw!"
	}
}

// Table is the immutable outcome relation for a move list. Moves sit on a
// circle; each move beats the next N/2 moves clockwise and loses to the rest.
type Table struct {
	moves MoveList
	cells [][]Outcome
	index map[string]int
}

// NewTable builds the outcome relation for moves. It is safe for concurrent
// readers once returned.
func NewTable(moves MoveList) *Table {
	n := len(moves)
	cells := make([][]Outcome, n)
	for i := range cells {
		cells[i] = make([]Outcome, n)
		for j := range cells[i] {
			cells[i][j] = outcomeAt(i, j, n)
		}
	}

	index := make(map[string]int, n)
	for i, label := range moves {
		index[strings.ToLower(label)] = i + 1
	}

	return &Table{
		moves: append(MoveList(nil), moves...),
		cells: cells,
		index: index,
	}
}

func outcomeAt(i, j, n int) Outcome {
	distance := (j - i + n) % n
	switch {
	case distance == 0:
		return Draw
	case distance <= n/2:
		return Win
	default:
		return Lose
	}
}

// Len returns the number of moves.
func (t *Table) Len() int {
	return len(t.moves)
}

// Moves returns a copy of the move list.
func (t *Table) Moves() MoveList {
	return append(MoveList(nil), t.moves...)
}

// Label returns the label of the 1-based move index.
func (t *Table) Label(move int) (string, error) {
	if err := t.check(move); err != nil {
		return "", err
	}
	return t.moves[move-1], nil
}

// Index looks up a move by label, ignoring case. The result is 1-based.
func (t *Table) Index(label string) (int, bool) {
	move, ok := t.index[strings.ToLower(strings.TrimSpace(label))]
	return move, ok
}

// At returns the outcome of move i against move j using 0-based indices.
func (t *Table) At(i, j int) Outcome {
	return t.cells[i][j]
}

// Outcome returns the result for the user's move against the computer's move.
// Both indices are 1-based.
func (t *Table) Outcome(user, computer int) (Outcome, error) {
	if err := t.check(user); err != nil {
		return Draw, fmt.Errorf("user move: %w", err)
	}
	if err := t.check(computer); err != nil {
		return Draw, fmt.Errorf("computer move: %w", err)
	}
	return t.cells[user-1][computer-1], nil
}

func (t *Table) check(move int) error {
	if move < 1 || move > len(t.moves) {
		return fmt.Errorf("%w: %d not in 1..%d", ErrInvalidMoveIndex, move, len(t.moves))
	}
	return nil
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	switch o {
	case Draw, Win, Lose:
		return []byte(o.String()), nil
	default:
		return nil, fmt.Errorf("unknown outcome %d", int(o))
	}
}

// UnmarshalText decodes an outcome name.
func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Draw":
		*o = Draw
	case "Win":
		*o = Win
	case "Lose":
		*o = Lose
	default:
		return fmt.Errorf("unknown outcome %q", text)
	}
	return nil
}
