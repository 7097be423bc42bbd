// Package config loads openmemo's daemon-wide settings from the
// environment: no config file, no flags for these settings, no
// third-party config library.
package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config holds settings that are the same across every CLI invocation,
// as opposed to per-command flags.
type Config struct {
	// DBPath is the SQLite file the CLI opens on startup.
	DBPath string
	// LogUseCases enables slog output from the service layer's
	// UseCaseObserver.
	LogUseCases bool
	// MaxIntervalDays caps the date range the CLI will ask an oracle to
	// cover, guarding against a pathological SSRF blow-up requesting an
	// unbounded range.
	MaxIntervalDays int
}

// DefaultConfig returns a Config with openmemo's defaults.
func DefaultConfig() Config {
	return Config{
		DBPath:          defaultDBPath(),
		LogUseCases:     false,
		MaxIntervalDays: 3650,
	}
}

// Load reads Config from environment variables, falling back to defaults
// for any unset value.
func Load() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("OPENMEMO_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("OPENMEMO_LOG_USECASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("OPENMEMO_MAX_INTERVAL_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxIntervalDays = n
		}
	}

	return cfg
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".openmemo/openmemo.db"
	}
	return filepath.Join(home, ".openmemo", "openmemo.db")
}
