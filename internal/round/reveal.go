package round

import (
	"errors"
	"fmt"
	"time"

	"github.com/lox/fairplay/internal/fairness"
	"github.com/lox/fairplay/internal/roundid"
	"github.com/lox/fairplay/internal/rules"
)

// Reveal is the end-of-round report. It always carries the disclosed key
// together with the outcome, so a result is never shown without its proof.
type Reveal struct {
	RoundID       string          `json:"round_id"`
	Scheme        fairness.Scheme `json:"scheme"`
	Moves         []string        `json:"moves"`
	UserMove      int             `json:"user_move"`
	UserLabel     string          `json:"user_label"`
	ComputerMove  int             `json:"computer_move"`
	ComputerLabel string          `json:"computer_label"`
	Outcome       rules.Outcome   `json:"outcome"`
	Message       string          `json:"message"`
	Commitment    string          `json:"hmac"`
	Key           string          `json:"key"`
	StartedAt     time.Time       `json:"started_at"`
	ResolvedAt    time.Time       `json:"resolved_at"`
}

// ErrInconsistentReveal is returned by Reveal.Verify when the recorded moves,
// labels or outcome do not agree with each other.
var ErrInconsistentReveal = errors.New("inconsistent reveal")

// Verify recomputes the commitment from the disclosed key and checks that it
// matches, that the committed message names the computer's move, and that the
// recorded labels and outcome follow from the move list. A round whose
// commitment does not match returns false; a malformed or self-contradictory
// record returns an error.
func (r Reveal) Verify() (bool, error) {
	if err := r.checkConsistent(); err != nil {
		return false, err
	}
	key, err := fairness.ParseKey(r.Key)
	if err != nil {
		return false, err
	}
	commitment, err := fairness.ParseCommitment(r.Commitment)
	if err != nil {
		return false, err
	}
	expected := fairness.Message(r.Scheme, r.RoundID, r.ComputerLabel, r.Moves)
	if string(expected) != r.Message {
		return false, nil
	}
	return fairness.Verify(key, expected, commitment), nil
}

func (r Reveal) checkConsistent() error {
	moves, err := rules.ParseMoves(r.Moves)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInconsistentReveal, err)
	}
	if r.Scheme == fairness.SchemeBound {
		if err := roundid.Validate(r.RoundID); err != nil {
			return fmt.Errorf("%w: %v", ErrInconsistentReveal, err)
		}
	}

	table := rules.NewTable(moves)
	if err := checkLabel(table, "user", r.UserMove, r.UserLabel); err != nil {
		return err
	}
	if err := checkLabel(table, "computer", r.ComputerMove, r.ComputerLabel); err != nil {
		return err
	}

	outcome, err := table.Outcome(r.UserMove, r.ComputerMove)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInconsistentReveal, err)
	}
	if outcome != r.Outcome {
		return fmt.Errorf("%w: outcome %s recorded, %s against %s is %s",
			ErrInconsistentReveal, r.Outcome, r.UserLabel, r.ComputerLabel, outcome)
	}
	return nil
}

func checkLabel(table *rules.Table, side string, move int, label string) error {
	want, err := table.Label(move)
	if err != nil {
		return fmt.Errorf("%w: %s move: %v", ErrInconsistentReveal, side, err)
	}
	if want != label {
		return fmt.Errorf("%w: %s move %d is %q, recorded %q", ErrInconsistentReveal, side, move, want, label)
	}
	return nil
}

// Score tallies outcomes over a session, from the user's side.
type Score struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// Rounds returns the number of resolved rounds.
func (s Score) Rounds() int {
	return s.Wins + s.Losses + s.Draws
}

func (s *Score) add(o rules.Outcome) {
	switch o {
	case rules.Win:
		s.Wins++
	case rules.Lose:
		s.Losses++
	default:
		s.Draws++
	}
}
