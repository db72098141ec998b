package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/fairplay/internal/display"
	"github.com/lox/fairplay/internal/fairness"
	"github.com/lox/fairplay/internal/round"
	"github.com/lox/fairplay/internal/rules"
)

// View forwards round events to a running program. It implements round.View.
type View struct {
	send   func(tea.Msg)
	format *display.Formatter
	moves  int
}

// NewView creates a view that delivers messages through send, usually
// (*tea.Program).Send.
func NewView(send func(tea.Msg), format *display.Formatter) *View {
	return &View{send: send, format: format}
}

func (v *View) Commitment(roundID string, c fairness.Commitment) {
	v.send(logMsg{text: v.format.Commitment(c)})
}

func (v *View) Menu(moves rules.MoveList) {
	v.moves = len(moves)
	v.send(logMsg{text: v.format.Menu(moves)})
}

func (v *View) Prompt() {
	v.send(promptMsg{})
}

func (v *View) Help(t *rules.Table) {
	v.send(logMsg{text: v.format.Help(t)})
}

func (v *View) InvalidInput(line string, err error) {
	v.send(logMsg{text: v.format.InvalidInput(line, v.moves, err)})
}

func (v *View) Reveal(r round.Reveal) {
	v.send(logMsg{text: v.format.Reveal(r) + "\n"})
}

func (v *View) Exit(score round.Score) {
	v.send(farewellMsg{text: v.format.Exit(score)})
}

// Run plays rounds inside a full-screen program until the user exits or ctx
// is cancelled. opts.Input and opts.View are replaced by the TUI. It returns
// the farewell text so the caller can print it after the screen is restored.
func Run(ctx context.Context, opts round.Options, format *display.Formatter, logger *log.Logger) (string, error) {
	model := NewModel(format.Title(opts.Table.Moves()), logger)
	program := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())

	opts.Input = model
	opts.View = NewView(program.Send, format)
	controller := round.New(opts)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := program.Run()
		model.closeInput()
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("run tui: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		defer program.Quit()
		return controller.Run(gctx)
	})

	err := g.Wait()
	farewell := model.Farewell()
	if farewell == "" && err == nil {
		// the program quit before it could show the summary
		farewell = format.Exit(controller.Score())
	}
	return farewell, err
}
