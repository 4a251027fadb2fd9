// Package config reads the service configuration from environment variables
// and builds the zerolog logger that the rest of the service receives as an
// explicit dependency.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Environment modes. The mode only changes logging defaults; the service
// behaves identically otherwise.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds everything the service needs at startup.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port int
	// DBPath is the SQLite database file. ":memory:" is accepted for
	// throwaway instances.
	DBPath string
	// Env is either "development" or "production".
	Env string
	// LogLevel is the effective zerolog level after applying defaults.
	LogLevel zerolog.Level
}

// Load reads PORT, DB_PATH, ENV and LOG_LEVEL from the environment and
// applies defaults: port 3000, contacts.db, development mode. In development
// the default log level is debug, in production it is info; LOG_LEVEL
// overrides either.
func Load() Config {
	cfg := Config{
		Port:   3000,
		DBPath: "contacts.db",
		Env:    EnvDevelopment,
	}
	if p := os.Getenv("PORT"); p != "" {
		if port, err := strconv.Atoi(p); err == nil && port > 0 {
			cfg.Port = port
		}
	}
	if path := os.Getenv("DB_PATH"); path != "" {
		cfg.DBPath = path
	}
	if strings.EqualFold(os.Getenv("ENV"), EnvProduction) {
		cfg.Env = EnvProduction
	}
	cfg.LogLevel = zerolog.DebugLevel
	if cfg.Env == EnvProduction {
		cfg.LogLevel = zerolog.InfoLevel
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(lvl)); err == nil {
			cfg.LogLevel = parsed
		}
	}
	return cfg
}

// NewLogger builds the process logger. Development mode writes
// human-readable console output, production mode writes JSON lines.
func (c Config) NewLogger() zerolog.Logger {
	var logger zerolog.Logger
	if c.Env == EnvDevelopment {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(c.LogLevel).With().Timestamp().Logger()
}
