package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.Mutex
	logger *zerolog.Logger
)

// initLogger builds the package logger from environment variables on first use.
func initLogger() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		l := newLogger(os.Stderr)
		logger = &l
	}
	return logger
}

func newLogger(out io.Writer) zerolog.Logger {
	return zerolog.New(out).
		Level(levelFromEnv()).
		With().
		Timestamp().
		Str("component", "mxf-reader").
		Logger()
}

// levelFromEnv resolves the log level from DEBUG and LOG_LEVEL.
func levelFromEnv() zerolog.Level {
	if debug := os.Getenv("DEBUG"); debug != "" {
		switch strings.ToLower(debug) {
		case "1", "true", "yes", "on":
			return zerolog.DebugLevel
		}
	}

	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// SetOutput redirects log output, re-reading the level from the environment.
// Intended for tests.
func SetOutput(out io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	l := newLogger(out)
	logger = &l
}

// IsDebugEnabled returns true if debug logging is enabled
func IsDebugEnabled() bool {
	return initLogger().GetLevel() <= zerolog.DebugLevel
}

// Debug logs a debug message
func Debug(format string, args ...any) {
	initLogger().Debug().Msgf(format, args...)
}

// Info logs an informational message
func Info(format string, args ...any) {
	initLogger().Info().Msgf(format, args...)
}

// Warn logs a warning message
func Warn(format string, args ...any) {
	initLogger().Warn().Msgf(format, args...)
}

// Error logs an error message
func Error(format string, args ...any) {
	initLogger().Error().Msgf(format, args...)
}
