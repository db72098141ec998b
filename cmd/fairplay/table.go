package main

import (
	"fmt"

	"github.com/lox/fairplay/internal/display"
	"github.com/lox/fairplay/internal/rules"
)

type TableCmd struct {
	Moves   []string `arg:"" help:"Move labels in cyclic order (odd count, at least 3)"`
	NoColor bool     `help:"Disable colored output"`
}

func (t *TableCmd) Run(streams *Streams) error {
	moves, err := rules.ParseMoves(t.Moves)
	if err != nil {
		return err
	}
	format := display.NewFormatter(streams.Out, !t.NoColor)
	fmt.Fprintln(streams.Out, format.Help(rules.NewTable(moves)))
	return nil
}
