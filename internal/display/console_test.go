package display

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/fairplay/internal/fairness"
	"github.com/lox/fairplay/internal/round"
	"github.com/lox/fairplay/internal/rules"
)

func newTable(t *testing.T, labels ...string) *rules.Table {
	t.Helper()
	moves, err := rules.ParseMoves(labels)
	require.NoError(t, err)
	return rules.NewTable(moves)
}

// helpRows maps each row label to its cell values.
func helpRows(out string, n int) map[string][]string {
	rows := map[string][]string{}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(strings.ReplaceAll(line, "│", " "))
		if len(fields) == n+1 {
			rows[fields[0]] = fields[1:]
		}
	}
	return rows
}

func TestHelpTable(t *testing.T) {
	table := newTable(t, "rock", "paper", "scissors")
	out := NewFormatter(&bytes.Buffer{}, false).Help(table)

	assert.Contains(t, out, HelpCorner)
	assert.Contains(t, out, "┌")
	assert.NotContains(t, out, "\x1b[")

	rows := helpRows(out, 3)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Draw", "Win", "Lose"}, rows["rock"])
	assert.Equal(t, []string{"Lose", "Draw", "Win"}, rows["paper"])
	assert.Equal(t, []string{"Win", "Lose", "Draw"}, rows["scissors"])
}

func TestHelpTableMatchesOutcome(t *testing.T) {
	labels := []string{"a", "b", "c", "d", "e", "f", "g"}
	table := newTable(t, labels...)
	rows := helpRows(NewFormatter(&bytes.Buffer{}, false).Help(table), len(labels))
	require.Len(t, rows, len(labels))

	for user, label := range labels {
		for computer := range labels {
			want, err := table.Outcome(user+1, computer+1)
			require.NoError(t, err)
			assert.Equal(t, want.String(), rows[label][computer], "user %s vs computer %s", label, labels[computer])
		}
	}
}

func TestConsoleRound(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf, false)
	table := newTable(t, "rock", "paper", "scissors")

	key, err := fairness.GenerateKey()
	require.NoError(t, err)
	commitment := fairness.Commit(key, []byte("scissors"))

	console.Commitment("r1", commitment)
	console.Menu(table.Moves())
	console.Prompt()
	console.InvalidInput("7", errors.New("invalid input: 7 is not between 1 and 3"))
	console.Reveal(round.Reveal{
		UserLabel:     "rock",
		ComputerLabel: "scissors",
		Outcome:       rules.Lose,
		Message:       "scissors",
		Commitment:    commitment.String(),
		Key:           key.String(),
	})
	console.Exit(round.Score{Losses: 1})

	out := buf.String()
	assert.Contains(t, out, "HMAC: "+commitment.String()+"\n")
	assert.Contains(t, out, "1 - rock\n2 - paper\n3 - scissors\n0 - exit\n? - help\n")
	assert.Contains(t, out, "Enter your move: ")
	assert.Contains(t, out, "Enter 1-3 or a move name")
	assert.Contains(t, out, "Your move: rock\n")
	assert.Contains(t, out, "Computer move: scissors\n")
	assert.Contains(t, out, "You lose!\n")
	assert.Contains(t, out, "HMAC key: "+key.String()+"\n")
	assert.Contains(t, out, "Exiting the game. 1 round: 0 wins, 1 loss, 0 draws.")

	// The commitment is printed before the key.
	assert.Less(t, strings.Index(out, "HMAC: "), strings.Index(out, "HMAC key: "))
}

func TestExitWithoutRounds(t *testing.T) {
	assert.Equal(t, "Exiting the game.", NewFormatter(&bytes.Buffer{}, false).Exit(round.Score{}))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 win", plural(1, "win"))
	assert.Equal(t, "2 wins", plural(2, "win"))
	assert.Equal(t, "3 losses", plural(3, "loss"))
}
