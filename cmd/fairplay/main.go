package main

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/fairplay/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Play    PlayCmd          `cmd:"" default:"withargs" help:"Play rounds against the computer (default)"`
	Table   TableCmd         `cmd:"" help:"Print the outcome table for a move list"`
	Verify  VerifyCmd        `cmd:"" help:"Check a disclosed key against a published HMAC"`
}

// Streams are the process's standard streams, bound into command Run methods
// so tests can substitute buffers.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("fairplay"),
		kong.Description("Provably fair rock paper scissors with any odd number of moves"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": config.DefaultFile,
		},
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	sigCtx, stop := setupSignalHandler(log.Default())
	defer stop()

	streams := &Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
	ctx.BindTo(sigCtx, (*context.Context)(nil))
	err = ctx.Run(streams)
	ctx.FatalIfErrorf(err)
}

// newLogger creates the process logger. Logs go to w unless path names a log
// file.
func newLogger(w io.Writer, path string, level log.Level) (*log.Logger, func(), error) {
	closer := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closer = func() {
			if err := f.Close(); err != nil {
				log.Error("Failed to close log file", "error", err)
			}
		}
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	return logger, closer, nil
}
