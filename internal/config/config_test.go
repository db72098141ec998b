package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/fairplay/internal/fairness"
	"github.com/lox/fairplay/internal/rules"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fairplay.hcl")
	src := `
moves      = ["rock", "paper", "scissors", "lizard", "spock"]
log_level  = "debug"
transcript = "rounds.json"

commitment {
  scheme = "bound"
}

display {
  color = false
  tui   = true
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{"rock", "paper", "scissors", "lizard", "spock"}, cfg.Moves)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "rounds.json", cfg.Transcript)
	assert.Equal(t, fairness.SchemeBound, cfg.Scheme)
	assert.False(t, cfg.Color)
	assert.True(t, cfg.TUI)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, level)
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`display {}`), "test.hcl")
	require.NoError(t, err)
	assert.True(t, cfg.Color)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, fairness.SchemeMove, cfg.Scheme)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`moves = [`), "broken.hcl")
	assert.Error(t, err)

	_, err = Parse([]byte(`unknown = 1`), "unknown.hcl")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad scheme", mutate: func(c *Config) { c.Scheme = "nonce" }, wantErr: true},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "even moves", mutate: func(c *Config) { c.Moves = []string{"a", "b"} }, wantErr: true},
		{name: "odd moves", mutate: func(c *Config) { c.Moves = []string{"a", "b", "c"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.Equal(t, tt.wantErr, err != nil, "Validate() error = %v", err)
		})
	}

	cfg := Default()
	cfg.Moves = []string{"a", "a", "b"}
	var usageErr *rules.UsageError
	assert.ErrorAs(t, cfg.Validate(), &usageErr)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnvFrom(map[string]string{
		"FAIRPLAY_SCHEME":     "bound",
		"FAIRPLAY_LOG_LEVEL":  "error",
		"FAIRPLAY_TRANSCRIPT": "/tmp/rounds.json",
		"FAIRPLAY_NO_COLOR":   "true",
	})
	require.NoError(t, err)

	assert.Equal(t, fairness.SchemeBound, cfg.Scheme)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "/tmp/rounds.json", cfg.Transcript)
	assert.False(t, cfg.Color)

	err = Default().ApplyEnvFrom(map[string]string{"FAIRPLAY_NO_COLOR": "maybe"})
	assert.Error(t, err)
}

func TestApplyEnvEmptyKeepsValues(t *testing.T) {
	cfg := Default()
	cfg.Transcript = "keep.json"
	require.NoError(t, cfg.ApplyEnvFrom(map[string]string{}))
	assert.Equal(t, "keep.json", cfg.Transcript)
	assert.True(t, cfg.Color)
}

func TestExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "fairplay.example.hcl"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.Moves, 5)
	assert.Equal(t, fairness.SchemeBound, cfg.Scheme)
	assert.Equal(t, "rounds.json", cfg.Transcript)
}
