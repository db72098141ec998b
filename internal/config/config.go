// Package config loads game settings from an HCL file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/fairplay/internal/fairness"
	"github.com/lox/fairplay/internal/rules"
)

// DefaultFile is the config file read when none is given.
const DefaultFile = "fairplay.hcl"

// File mirrors the HCL config file.
type File struct {
	Moves      []string         `hcl:"moves,optional"`
	LogLevel   string           `hcl:"log_level,optional"`
	Transcript string           `hcl:"transcript,optional"`
	Commitment *CommitmentBlock `hcl:"commitment,block"`
	Display    *DisplayBlock    `hcl:"display,block"`
}

// CommitmentBlock configures the fairness protocol.
type CommitmentBlock struct {
	Scheme string `hcl:"scheme,optional"`
}

// DisplayBlock configures terminal output.
type DisplayBlock struct {
	Color *bool `hcl:"color,optional"`
	TUI   bool  `hcl:"tui,optional"`
}

// Env holds overrides read from the environment.
type Env struct {
	Scheme     string `env:"FAIRPLAY_SCHEME"`
	LogLevel   string `env:"FAIRPLAY_LOG_LEVEL"`
	Transcript string `env:"FAIRPLAY_TRANSCRIPT"`
	NoColor    bool   `env:"FAIRPLAY_NO_COLOR"`
}

// Config is the resolved configuration.
type Config struct {
	Moves      []string
	LogLevel   string
	Scheme     fairness.Scheme
	Transcript string
	Color      bool
	TUI        bool
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "warn",
		Scheme:   fairness.SchemeMove,
		Color:    true,
	}
}

// Load reads filename, returning defaults if it does not exist.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source over the defaults.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw File
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	cfg.Moves = raw.Moves
	cfg.Transcript = raw.Transcript
	if raw.LogLevel != "" {
		cfg.LogLevel = raw.LogLevel
	}
	if raw.Commitment != nil && raw.Commitment.Scheme != "" {
		cfg.Scheme = fairness.Scheme(raw.Commitment.Scheme)
	}
	if raw.Display != nil {
		if raw.Display.Color != nil {
			cfg.Color = *raw.Display.Color
		}
		cfg.TUI = raw.Display.TUI
	}
	return cfg, nil
}

// ApplyEnv overrides settings from the process environment.
func (c *Config) ApplyEnv() error {
	return c.ApplyEnvFrom(nil)
}

// ApplyEnvFrom overrides settings from environ, or from the process
// environment when environ is nil.
func (c *Config) ApplyEnvFrom(environ map[string]string) error {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if e.Scheme != "" {
		c.Scheme = fairness.Scheme(e.Scheme)
	}
	if e.LogLevel != "" {
		c.LogLevel = e.LogLevel
	}
	if e.Transcript != "" {
		c.Transcript = e.Transcript
	}
	if e.NoColor {
		c.Color = false
	}
	return nil
}

// Validate checks the settings. Moves are only checked when present, since
// they may still come from the command line.
func (c *Config) Validate() error {
	scheme, err := fairness.ParseScheme(string(c.Scheme))
	if err != nil {
		return err
	}
	c.Scheme = scheme

	if _, err := c.Level(); err != nil {
		return err
	}

	if len(c.Moves) > 0 {
		if _, err := rules.ParseMoves(c.Moves); err != nil {
			return err
		}
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (log.Level, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}
