// Package logger provides modifications to charmbracelet/log's default
// logger to be used in various files/packages.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a new charm log writing to stderr with a given prefix,
// respecting the global log level.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// Default is an alias for New, kept for call sites that want a log.Logger
// without naming the destination explicitly.
func Default(prefix string) *log.Logger {
	return New(prefix)
}

// NewWithConfig creates a new charm log with custom config, writing to w.
func NewWithConfig(w io.Writer, prefix string, level log.Level, caller, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}
