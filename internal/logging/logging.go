// Package logging builds the structured logger shared by every command.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New returns a timestamped logger writing to stderr. Unknown levels fall
// back to info.
func New(level, prefix string) *log.Logger {
	return NewWriter(os.Stderr, level, prefix)
}

// NewWriter is New with an explicit destination.
func NewWriter(w io.Writer, level, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
