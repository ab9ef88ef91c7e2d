// Package config reads the runtime settings of the application from the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultDebounceDelay = 50 * time.Millisecond
	DefaultMaxDimension  = 1200
)

// ResizerKind selects the backend used to downscale uploads
type ResizerKind string

const (
	ResizerDraw   ResizerKind = "draw"
	ResizerOpenCV ResizerKind = "opencv"
)

// Config holds everything the entry point needs to wire the application
type Config struct {
	LogLevel      zerolog.Level
	DebounceDelay time.Duration
	MaxDimension  int
	Resizer       ResizerKind
	Seed          int64

	// Warnings lists values that were rejected in favour of defaults
	Warnings []string
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		LogLevel:      zerolog.InfoLevel,
		DebounceDelay: DefaultDebounceDelay,
		MaxDimension:  DefaultMaxDimension,
		Resizer:       ResizerDraw,
	}
}

// Load reads the process environment
func Load() Config {
	return LoadFrom(os.Getenv)
}

// LoadFrom reads configuration through lookup. Invalid values keep their
// defaults and are recorded in Warnings.
func LoadFrom(lookup func(string) string) Config {
	cfg := Default()

	cfg.LogLevel = determineLogLevel(lookup, &cfg)

	if raw := lookup("GLITCH_DEBOUNCE_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms <= 0 {
			cfg.warn("GLITCH_DEBOUNCE_MS", raw)
		} else {
			cfg.DebounceDelay = time.Duration(ms) * time.Millisecond
		}
	}

	if raw := lookup("GLITCH_MAX_DIMENSION"); raw != "" {
		dim, err := strconv.Atoi(raw)
		if err != nil || dim <= 0 {
			cfg.warn("GLITCH_MAX_DIMENSION", raw)
		} else {
			cfg.MaxDimension = dim
		}
	}

	if raw := lookup("GLITCH_RESIZER"); raw != "" {
		switch kind := ResizerKind(strings.ToLower(raw)); kind {
		case ResizerDraw, ResizerOpenCV:
			cfg.Resizer = kind
		default:
			cfg.warn("GLITCH_RESIZER", raw)
		}
	}

	if raw := lookup("GLITCH_SEED"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			cfg.warn("GLITCH_SEED", raw)
		} else {
			cfg.Seed = seed
		}
	}

	return cfg
}

// determineLogLevel honours LOG_LEVEL first, then DEBUG=1
func determineLogLevel(lookup func(string) string, cfg *Config) zerolog.Level {
	if raw := lookup("LOG_LEVEL"); raw != "" {
		level, err := zerolog.ParseLevel(strings.ToLower(raw))
		if err == nil && level != zerolog.NoLevel {
			return level
		}
		cfg.warn("LOG_LEVEL", raw)
	}

	if lookup("DEBUG") == "1" {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

func (c *Config) warn(key, value string) {
	c.Warnings = append(c.Warnings, fmt.Sprintf("ignoring invalid %s=%q", key, value))
}
