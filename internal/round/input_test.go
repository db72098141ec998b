package round

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/fairplay/internal/rules"
)

func TestParseInput(t *testing.T) {
	moves, err := rules.ParseMoves([]string{"Rock", "Paper", "Scissors"})
	require.NoError(t, err)
	table := rules.NewTable(moves)

	tests := []struct {
		line    string
		want    Input
		wantErr bool
	}{
		{line: "0", want: Input{Kind: InputExit}},
		{line: " 0 ", want: Input{Kind: InputExit}},
		{line: "?", want: Input{Kind: InputHelp}},
		{line: "1", want: Input{Kind: InputMove, Move: 1}},
		{line: "3", want: Input{Kind: InputMove, Move: 3}},
		{line: "scissors", want: Input{Kind: InputMove, Move: 3}},
		{line: "4", wantErr: true},
		{line: "-2", wantErr: true},
		{line: "", wantErr: true},
		{line: "1.5", wantErr: true},
		{line: "help", wantErr: true},
		{line: "+2", wantErr: true},
		{line: "02", wantErr: true},
		{line: "00", wantErr: true},
		{line: "-0", wantErr: true},
		{line: "99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseInput(tt.line, table)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStateTransitions(t *testing.T) {
	assert.True(t, Start.CanTransition(MoveChosen))
	assert.True(t, AwaitingUserInput.CanTransition(HelpDisplayed))
	assert.True(t, HelpDisplayed.CanTransition(AwaitingUserInput))
	assert.True(t, AwaitingUserInput.CanTransition(Terminal))
	assert.True(t, KeyRevealed.CanTransition(Start))

	assert.False(t, Start.CanTransition(Resolved))
	assert.False(t, CommitmentPublished.CanTransition(Resolved))
	assert.False(t, Resolved.CanTransition(Terminal))
	assert.False(t, Terminal.CanTransition(Start))

	assert.Equal(t, "help-displayed", HelpDisplayed.String())
	assert.Equal(t, "State(42)", State(42).String())
}

func TestScore(t *testing.T) {
	var s Score
	s.add(rules.Win)
	s.add(rules.Win)
	s.add(rules.Lose)
	s.add(rules.Draw)
	assert.Equal(t, Score{Wins: 2, Losses: 1, Draws: 1}, s)
	assert.Equal(t, 4, s.Rounds())
}
