package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	base zerolog.Logger
)

// Init configures the global logger.
//
// Logs go to stderr by default so command output on stdout stays clean.
//
// Environment variables (optional):
//   - LOG_LEVEL: debug|info|warn|error (default: warn)
//   - LOG_PRETTY: true|false (default: true)
//   - LOG_OUTPUT: stderr|stdout (default: stderr)
func Init() {
	level := parseLevel(getenv("LOG_LEVEL", "warn"))
	pretty := strings.EqualFold(getenv("LOG_PRETTY", "true"), "true")

	zerolog.TimeFieldFormat = time.RFC3339Nano
	var w io.Writer = output(getenv("LOG_OUTPUT", "stderr"))
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	base = zerolog.New(w).With().Timestamp().Logger().Level(level)
}

// L returns the global logger. Call Init() once on startup.
func L() *zerolog.Logger {
	if base.GetLevel() == zerolog.NoLevel {
		Init()
	}
	return &base
}

func output(name string) io.Writer {
	if strings.EqualFold(name, "stdout") {
		return os.Stdout
	}
	return os.Stderr
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
