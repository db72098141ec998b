// Package display renders rounds for a terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/lox/fairplay/internal/fairness"
	"github.com/lox/fairplay/internal/round"
	"github.com/lox/fairplay/internal/rules"
)

// HelpCorner labels the help table's corner cell: rows are the user's move,
// columns the computer's, and cells the result for the user.
const HelpCorner = `User \ PC`

// Formatter turns round events into styled text.
type Formatter struct {
	styles *Styles
}

// NewFormatter creates a formatter rendering for w. With color disabled all
// output is plain text.
func NewFormatter(w io.Writer, color bool) *Formatter {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Formatter{styles: NewStyles(r)}
}

// Title renders the banner shown when a game starts.
func (f *Formatter) Title(moves rules.MoveList) string {
	return f.styles.Title.Render(fmt.Sprintf("%d-move rock paper scissors", len(moves)))
}

// Commitment renders the HMAC line published before the user moves.
func (f *Formatter) Commitment(c fairness.Commitment) string {
	return "HMAC: " + f.styles.Commitment.Render(c.String())
}

// Menu renders the numbered move list.
func (f *Formatter) Menu(moves rules.MoveList) string {
	var b strings.Builder
	b.WriteString("Available moves:\n")
	for i, label := range moves {
		fmt.Fprintf(&b, "%s - %s\n", f.styles.MenuIndex.Render(fmt.Sprint(i+1)), label)
	}
	fmt.Fprintf(&b, "%s - exit\n", f.styles.MenuIndex.Render("0"))
	fmt.Fprintf(&b, "%s - help", f.styles.MenuIndex.Render("?"))
	return b.String()
}

// Prompt renders the input prompt.
func (f *Formatter) Prompt() string {
	return f.styles.Prompt.Render("Enter your move:") + " "
}

// Help renders the bordered outcome table.
func (f *Formatter) Help(t *rules.Table) string {
	moves := t.Moves()
	headers := append([]string{HelpCorner}, moves...)

	rows := make([][]string, len(moves))
	for i, label := range moves {
		row := make([]string, 0, len(moves)+1)
		row = append(row, label)
		for j := range moves {
			row = append(row, t.At(i, j).String())
		}
		rows[i] = row
	}

	tbl := lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(f.styles.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow || col == 0 {
				return f.styles.Header
			}
			return f.styles.Cell.Inherit(f.outcomeStyle(t.At(row, col-1)))
		})

	return tbl.String()
}

// InvalidInput renders the re-prompt notice.
func (f *Formatter) InvalidInput(line string, n int, err error) string {
	return f.styles.Error.Render(fmt.Sprintf("%v. Enter 1-%d or a move name, 0 to exit, ? for help.", err, n))
}

// Reveal renders the end-of-round result and the disclosed key.
func (f *Formatter) Reveal(r round.Reveal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your move: %s\n", r.UserLabel)
	fmt.Fprintf(&b, "Computer move: %s\n", r.ComputerLabel)
	b.WriteString(f.outcomeStyle(r.Outcome).Render(r.Outcome.Message()))
	b.WriteString("\n")
	fmt.Fprintf(&b, "HMAC key: %s\n", f.styles.Key.Render(r.Key))
	b.WriteString(f.styles.Info.Render(fmt.Sprintf("Check: HMAC-SHA256(key, %q) = %s", r.Message, r.Commitment)))
	return b.String()
}

// Exit renders the goodbye line with the session tally.
func (f *Formatter) Exit(score round.Score) string {
	if score.Rounds() == 0 {
		return "Exiting the game."
	}
	return fmt.Sprintf("Exiting the game. %s: %s, %s, %s.",
		plural(score.Rounds(), "round"),
		f.styles.Win.Render(plural(score.Wins, "win")),
		f.styles.Lose.Render(plural(score.Losses, "loss")),
		f.styles.Draw.Render(plural(score.Draws, "draw")))
}

func (f *Formatter) outcomeStyle(o rules.Outcome) lipgloss.Style {
	switch o {
	case rules.Win:
		return f.styles.Win
	case rules.Lose:
		return f.styles.Lose
	default:
		return f.styles.Draw
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	if strings.HasSuffix(noun, "s") {
		return fmt.Sprintf("%d %ses", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// Console writes rounds to a line-oriented terminal. It implements
// round.View.
type Console struct {
	out    io.Writer
	format *Formatter
	moves  int
}

// NewConsole creates a console view writing to out.
func NewConsole(out io.Writer, color bool) *Console {
	return &Console{out: out, format: NewFormatter(out, color)}
}

// Formatter returns the console's formatter.
func (c *Console) Formatter() *Formatter {
	return c.format
}

func (c *Console) Commitment(roundID string, commitment fairness.Commitment) {
	fmt.Fprintln(c.out, c.format.Commitment(commitment))
}

func (c *Console) Menu(moves rules.MoveList) {
	c.moves = len(moves)
	fmt.Fprintln(c.out, c.format.Menu(moves))
}

func (c *Console) Prompt() {
	fmt.Fprint(c.out, c.format.Prompt())
}

func (c *Console) Help(t *rules.Table) {
	fmt.Fprintln(c.out, c.format.Help(t))
}

func (c *Console) InvalidInput(line string, err error) {
	fmt.Fprintln(c.out, c.format.InvalidInput(line, c.moves, err))
}

func (c *Console) Reveal(r round.Reveal) {
	fmt.Fprintln(c.out, c.format.Reveal(r))
	fmt.Fprintln(c.out)
}

func (c *Console) Exit(score round.Score) {
	fmt.Fprintln(c.out, c.format.Exit(score))
}
