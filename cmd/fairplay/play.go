package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/lox/fairplay/internal/config"
	"github.com/lox/fairplay/internal/console"
	"github.com/lox/fairplay/internal/display"
	"github.com/lox/fairplay/internal/fairness"
	"github.com/lox/fairplay/internal/round"
	"github.com/lox/fairplay/internal/rules"
	"github.com/lox/fairplay/internal/transcript"
	"github.com/lox/fairplay/internal/tui"
)

type PlayCmd struct {
	Moves      []string `arg:"" optional:"" help:"Move labels in cyclic order (odd count, at least 3; overrides config)"`
	Config     string   `short:"c" default:"${config_file}" help:"Path to HCL configuration file"`
	Scheme     string   `help:"Commitment scheme: move or bound (overrides config)"`
	Transcript string   `help:"Append each revealed round to this JSON file (overrides config)"`
	TUI        bool     `name:"tui" help:"Use the full-screen terminal UI"`
	NoColor    bool     `help:"Disable colored output"`
	LogLevel   string   `short:"l" help:"Log level: debug, info, warn or error (overrides config)"`
	LogFile    string   `help:"Write logs to this file instead of stderr"`
}

// resolve merges the config file, the environment and the flags, in rising
// order of precedence.
func (p *PlayCmd) resolve() (*config.Config, error) {
	cfg, err := config.Load(p.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if len(p.Moves) > 0 {
		cfg.Moves = p.Moves
	}
	if p.Scheme != "" {
		cfg.Scheme = fairness.Scheme(p.Scheme)
	}
	if p.Transcript != "" {
		cfg.Transcript = p.Transcript
	}
	if p.TUI {
		cfg.TUI = true
	}
	if p.NoColor {
		cfg.Color = false
	}
	if p.LogLevel != "" {
		cfg.LogLevel = p.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (p *PlayCmd) Run(ctx context.Context, streams *Streams) error {
	cfg, err := p.resolve()
	if err != nil {
		return err
	}
	moves, err := rules.ParseMoves(cfg.Moves)
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}

	logOut := streams.Err
	if cfg.TUI {
		// stderr shares the terminal with the TUI
		logOut = io.Discard
	}
	logger, closeLog, err := newLogger(logOut, p.LogFile, level)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()

	opts := round.Options{
		Table:  rules.NewTable(moves),
		Scheme: cfg.Scheme,
		Logger: logger,
	}
	if cfg.Transcript != "" {
		rec, err := transcript.NewRecorder(cfg.Transcript, logger)
		if err != nil {
			return err
		}
		opts.OnReveal = rec.Record
	}

	logger.Info("Starting game", "moves", moves.String(), "scheme", cfg.Scheme, "tui", cfg.TUI)

	if cfg.TUI {
		farewell, err := tui.Run(ctx, opts, display.NewFormatter(streams.Out, cfg.Color), logger)
		if farewell != "" {
			fmt.Fprintln(streams.Out, farewell)
		}
		return interrupted(err, streams)
	}

	view := display.NewConsole(streams.Out, cfg.Color)
	fmt.Fprintln(streams.Out, view.Formatter().Title(moves))
	opts.Input = console.NewInput(streams.In)
	opts.View = view
	return interrupted(round.New(opts).Run(ctx), streams)
}

// interrupted turns a cancelled session into a clean exit. The unfinished
// round's key has already been discarded.
func interrupted(err error, streams *Streams) error {
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(streams.Out)
		fmt.Fprintln(streams.Out, "Interrupted.")
		return nil
	}
	return err
}
