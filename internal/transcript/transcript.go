// Package transcript saves revealed rounds so they can be verified later,
// away from the game.
package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/fairplay/internal/round"
)

// Recorder keeps the reveals of a session and rewrites the transcript file
// after each one.
type Recorder struct {
	path    string
	logger  *log.Logger
	mu      sync.Mutex
	reveals []round.Reveal
}

// NewRecorder creates a recorder writing to path. Rounds already in the file
// are kept.
func NewRecorder(path string, logger *log.Logger) (*Recorder, error) {
	reveals, err := Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return &Recorder{
		path:    path,
		logger:  logger.WithPrefix("transcript"),
		reveals: reveals,
	}, nil
}

// Record appends r and saves the transcript. It matches the signature of
// round.Options.OnReveal.
func (rec *Recorder) Record(r round.Reveal) error {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	rec.reveals = append(rec.reveals, r)
	data, err := json.MarshalIndent(rec.reveals, "", "  ")
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	if err := writeAtomic(rec.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write transcript %s: %w", rec.path, err)
	}
	rec.logger.Debug("Saved round", "round", r.RoundID, "rounds", len(rec.reveals))
	return nil
}

// Len returns the number of recorded rounds.
func (rec *Recorder) Len() int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return len(rec.reveals)
}

// Load reads the reveals stored at path.
func Load(path string) ([]round.Reveal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reveals []round.Reveal
	if err := json.Unmarshal(data, &reveals); err != nil {
		return nil, fmt.Errorf("decode transcript %s: %w", path, err)
	}
	return reveals, nil
}

// Failure describes a round whose proof does not check out.
type Failure struct {
	Index   int
	RoundID string
	Err     error
}

// Verify checks every reveal in reveals and returns the rounds that fail.
func Verify(reveals []round.Reveal) []Failure {
	var failures []Failure
	for i, r := range reveals {
		ok, err := r.Verify()
		if err == nil && !ok {
			err = errors.New("commitment does not match key and message")
		}
		if err != nil {
			failures = append(failures, Failure{Index: i + 1, RoundID: r.RoundID, Err: err})
		}
	}
	return failures
}
