// Package logging wraps charmbracelet/log for the seevg command.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Package-level logger is intentional for convenience
var (
	defaultLogger     *log.Logger
	defaultLoggerOnce sync.Once
	defaultLoggerMu   sync.RWMutex
)

func getDefaultLogger() *log.Logger {
	defaultLoggerOnce.Do(func() {
		defaultLoggerMu.Lock()
		if defaultLogger == nil {
			defaultLogger = New("info")
		}
		defaultLoggerMu.Unlock()
	})

	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

// New creates a logger writing to stderr at the given level
// ("debug", "info", "warn" or "error"). Unknown levels select info.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	setLoggerLevel(logger, level)
	return logger
}

// NewInteractive creates a logger for long-running commands such as serve,
// where timestamps help correlate browser activity.
func NewInteractive() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "seevg",
	})
	logger.SetLevel(log.InfoLevel)
	return logger
}

// ParseLevel maps a level name to a log level. Unknown names select info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func setLoggerLevel(logger *log.Logger, level string) {
	logger.SetLevel(ParseLevel(level))
}

// Default returns the package-level default logger.
func Default() *log.Logger {
	return getDefaultLogger()
}

// SetDefault replaces the package-level default logger.
func SetDefault(logger *log.Logger) {
	getDefaultLogger()

	defaultLoggerMu.Lock()
	defaultLogger = logger
	defaultLoggerMu.Unlock()
}

// SetLevel updates the level of the default logger.
func SetLevel(level string) {
	setLoggerLevel(getDefaultLogger(), level)
}
