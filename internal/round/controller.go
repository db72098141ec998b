// Package round runs the commit-reveal game loop: the computer commits to a
// move, the user answers, and the computer then discloses its key.
package round

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/fairplay/internal/fairness"
	"github.com/lox/fairplay/internal/randutil"
	"github.com/lox/fairplay/internal/roundid"
	"github.com/lox/fairplay/internal/rules"
)

// ErrExit is returned by Play when the user leaves the game.
var ErrExit = errors.New("player exited")

// ErrIllegalTransition indicates a bug in the round state machine.
var ErrIllegalTransition = errors.New("illegal state transition")

// LineReader supplies one line of user input at a time. It returns io.EOF
// when input is exhausted and ctx.Err() when ctx is cancelled.
type LineReader interface {
	ReadLine(ctx context.Context) (string, error)
}

// View presents a round to the user. Calls arrive in protocol order:
// Commitment and Menu always precede the first Prompt of a round.
type View interface {
	Commitment(roundID string, c fairness.Commitment)
	Menu(moves rules.MoveList)
	Prompt()
	Help(table *rules.Table)
	InvalidInput(line string, err error)
	Reveal(r Reveal)
	Exit(score Score)
}

// Options configures a Controller. Table, Input and View are required.
type Options struct {
	Table  *rules.Table
	Input  LineReader
	View   View
	Scheme fairness.Scheme

	Keys   *fairness.KeyGenerator
	Source randutil.Source
	IDs    *roundid.Generator
	Clock  quartz.Clock
	Logger *log.Logger

	// OnReveal is called after each Reveal has been shown.
	OnReveal func(Reveal) error
}

// Controller plays rounds one at a time.
type Controller struct {
	table    *rules.Table
	input    LineReader
	view     View
	scheme   fairness.Scheme
	keys     *fairness.KeyGenerator
	source   randutil.Source
	ids      *roundid.Generator
	clock    quartz.Clock
	logger   *log.Logger
	onReveal func(Reveal) error

	state State
	score Score
}

// round holds the secrets of the round in progress.
type round struct {
	id         string
	key        fairness.Key
	computer   int
	message    []byte
	commitment fairness.Commitment
	user       int
	outcome    rules.Outcome
	startedAt  time.Time
}

// New creates a controller, filling unset dependencies with production
// defaults.
func New(opts Options) *Controller {
	if opts.Keys == nil {
		opts.Keys = fairness.NewKeyGenerator(nil)
	}
	if opts.Source == nil {
		opts.Source = randutil.Crypto()
	}
	if opts.IDs == nil {
		opts.IDs = roundid.NewGenerator(nil)
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
	}
	if opts.Scheme == "" {
		opts.Scheme = fairness.SchemeMove
	}

	return &Controller{
		table:    opts.Table,
		input:    opts.Input,
		view:     opts.View,
		scheme:   opts.Scheme,
		keys:     opts.Keys,
		source:   opts.Source,
		ids:      opts.IDs,
		clock:    opts.Clock,
		logger:   opts.Logger.WithPrefix("round"),
		onReveal: opts.OnReveal,
		state:    Start,
	}
}

// State returns the protocol state of the current or last round.
func (c *Controller) State() State {
	return c.state
}

// Score returns the session tally.
func (c *Controller) Score() Score {
	return c.score
}

// Run plays rounds until the user exits, input ends or ctx is cancelled.
// A user exit returns nil.
func (c *Controller) Run(ctx context.Context) error {
	for {
		if _, err := c.Play(ctx); err != nil {
			if errors.Is(err, ErrExit) {
				c.view.Exit(c.score)
				return nil
			}
			return err
		}
	}
}

// Play runs a single round. It returns ErrExit if the user leaves before
// choosing a move; in that case the round's key is discarded unseen and the
// controller is Terminal. Play after Terminal, or after a round aborted by an
// error, returns ErrIllegalTransition.
func (c *Controller) Play(ctx context.Context) (*Reveal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// A new controller is already at Start; later rounds follow KeyRevealed.
	if c.state != Start {
		if err := c.transition(c.logger, Start); err != nil {
			return nil, err
		}
	}
	r := &round{startedAt: c.clock.Now()}

	id, err := c.ids.New()
	if err != nil {
		return nil, err
	}
	r.id = id
	logger := c.logger.With("round", r.id)

	r.key, err = c.keys.Generate()
	if err != nil {
		logger.Error("Cannot generate round key", "error", err)
		return nil, err
	}
	defer r.key.Wipe()

	pick, err := c.source.IntN(c.table.Len())
	if err != nil {
		return nil, fmt.Errorf("%w: pick computer move: %v", fairness.ErrEntropyUnavailable, err)
	}
	r.computer = pick + 1
	if err := c.transition(logger, MoveChosen); err != nil {
		return nil, err
	}

	label, err := c.table.Label(r.computer)
	if err != nil {
		return nil, err
	}
	r.message = fairness.Message(c.scheme, r.id, label, c.table.Moves())
	r.commitment = fairness.Commit(r.key, r.message)
	c.view.Commitment(r.id, r.commitment)
	c.view.Menu(c.table.Moves())
	if err := c.transition(logger, CommitmentPublished); err != nil {
		return nil, err
	}

	r.user, err = c.awaitMove(ctx, logger)
	if err != nil {
		if errors.Is(err, ErrExit) {
			if terr := c.transition(logger, Terminal); terr != nil {
				return nil, terr
			}
		}
		return nil, err
	}

	r.outcome, err = c.table.Outcome(r.user, r.computer)
	if err != nil {
		logger.Error("Outcome lookup failed", "error", err)
		return nil, fmt.Errorf("resolve round: %w", err)
	}
	if err := c.transition(logger, Resolved); err != nil {
		return nil, err
	}

	reveal := c.reveal(r)
	c.score.add(r.outcome)
	c.view.Reveal(reveal)
	if err := c.transition(logger, KeyRevealed); err != nil {
		return nil, err
	}
	logger.Info("Round complete", "outcome", r.outcome, "user", reveal.UserLabel, "computer", reveal.ComputerLabel)

	if c.onReveal != nil {
		if err := c.onReveal(reveal); err != nil {
			logger.Error("Reveal hook failed", "error", err)
		}
	}

	return &reveal, nil
}

// awaitMove reads lines until one names a move, the user exits, or input fails.
func (c *Controller) awaitMove(ctx context.Context, logger *log.Logger) (int, error) {
	for {
		if err := c.transition(logger, AwaitingUserInput); err != nil {
			return 0, err
		}
		c.view.Prompt()

		line, err := c.input.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				logger.Debug("Input closed")
				return 0, ErrExit
			}
			return 0, err
		}

		in, err := ParseInput(line, c.table)
		if err != nil {
			logger.Debug("Rejected input", "line", line, "error", err)
			c.view.InvalidInput(line, err)
			continue
		}

		switch in.Kind {
		case InputExit:
			return 0, ErrExit
		case InputHelp:
			if err := c.transition(logger, HelpDisplayed); err != nil {
				return 0, err
			}
			c.view.Help(c.table)
		case InputMove:
			return in.Move, nil
		}
	}
}

func (c *Controller) reveal(r *round) Reveal {
	userLabel, _ := c.table.Label(r.user)
	computerLabel, _ := c.table.Label(r.computer)
	return Reveal{
		RoundID:       r.id,
		Scheme:        c.scheme,
		Moves:         c.table.Moves(),
		UserMove:      r.user,
		UserLabel:     userLabel,
		ComputerMove:  r.computer,
		ComputerLabel: computerLabel,
		Outcome:       r.outcome,
		Message:       string(r.message),
		Commitment:    r.commitment.String(),
		Key:           r.key.String(),
		StartedAt:     r.startedAt,
		ResolvedAt:    c.clock.Now(),
	}
}

func (c *Controller) transition(logger *log.Logger, next State) error {
	if !c.state.CanTransition(next) {
		logger.Error("Illegal transition", "from", c.state, "to", next)
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, c.state, next)
	}
	logger.Debug("Transition", "from", c.state, "to", next)
	c.state = next
	return nil
}
