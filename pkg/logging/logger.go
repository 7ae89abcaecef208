// Package logging wraps github.com/charmbracelet/log exactly as the
// teacher's internal/logging does — a package-level default logger, a level
// string constructor, context-carried propagation — extended with a
// phase-stack scope helper, a JSON-lines file sink, and a build-timing
// summary.
package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Logger is the logging handle every package in this module accepts; an
// alias rather than a new interface, so callers can still reach the full
// charmbracelet/log API (With, SetLevel, …) when they need it.
type Logger = log.Logger

//nolint:gochecknoglobals // package-level logger is intentional for convenience
var (
	defaultLogger     *Logger
	defaultLoggerOnce sync.Once
)

func getDefaultLogger() *Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = New("info")
	})
	return defaultLogger
}

// New creates a logger at the given level ("debug", "info", "warn", "error";
// anything else falls back to "info"), writing to stderr.
func New(level string) *Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		ReportCaller:    false,
	})
	setLoggerLevel(logger, level)
	return logger
}

func setLoggerLevel(logger *Logger, level string) {
	switch strings.ToLower(level) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn", "warning":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}

// Default returns the package-level default logger.
func Default() *Logger { return getDefaultLogger() }

// SetDefault replaces the package-level default logger.
func SetDefault(logger *Logger) { defaultLogger = logger }

// SetLevel updates the default logger's level.
func SetLevel(level string) { setLoggerLevel(getDefaultLogger(), level) }
