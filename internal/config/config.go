// Package config holds the construction-time options of a game round.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "SHAPE_REVEAL_"

// Device profiles.
const (
	ProfileDesktop    = "desktop"
	ProfileSmartphone = "smartphone"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full set of options. Zero values are not meaningful; use
// Default or Load.
type Config struct {
	Width       int     `env:"WIDTH" envDefault:"360"`
	Height      int     `env:"HEIGHT" envDefault:"640"`
	TimeLimit   float64 `env:"TIME_LIMIT" envDefault:"60"` // seconds
	ContainerID string  `env:"CONTAINER_ID" envDefault:"sketch-wrapper"`
	Level       int     `env:"LEVEL" envDefault:"2"`
	Profile     string  `env:"PROFILE" envDefault:"desktop"`
	ScoreDB     string  `env:"SCORE_DB"`
}

// Load reads the configuration from SHAPE_REVEAL_* environment variables,
// falling back to defaults, and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in defaults without consulting the environment.
func Default() Config {
	return Config{
		Width:       360,
		Height:      640,
		TimeLimit:   60,
		ContainerID: "sketch-wrapper",
		Level:       2,
		Profile:     ProfileDesktop,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: surface %dx%d must be positive", ErrInvalid, c.Width, c.Height)
	case c.TimeLimit <= 0:
		return fmt.Errorf("%w: time limit %v must be positive", ErrInvalid, c.TimeLimit)
	case c.Level < 0:
		return fmt.Errorf("%w: level %d must not be negative", ErrInvalid, c.Level)
	}
	switch strings.ToLower(c.Profile) {
	case ProfileDesktop, ProfileSmartphone:
	default:
		return fmt.Errorf("%w: unknown profile %q", ErrInvalid, c.Profile)
	}
	return nil
}

// RoundDuration returns TimeLimit as a time.Duration.
func (c Config) RoundDuration() time.Duration {
	return time.Duration(c.TimeLimit * float64(time.Second))
}

// Brush describes how the drawing surface behaves on a device class.
type Brush struct {
	Size        int // brush stamp edge, surface units
	MinProgress int // percent of the silhouette that must be painted
}

// Brush returns the brush settings for the configured profile.
func (c Config) Brush() Brush {
	if strings.EqualFold(c.Profile, ProfileSmartphone) {
		return Brush{Size: 20, MinProgress: 90}
	}
	return Brush{Size: 13, MinProgress: 80}
}
