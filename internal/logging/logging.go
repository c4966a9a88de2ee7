// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Options selects where log lines go and how verbose they are.
type Options struct {
	Level  string // debug, info, warn, error; empty means info
	File   string // append to this file; empty means Fallback
	Prefix string

	// Fallback receives output when File is empty. Interactive runs pass
	// io.Discard so log lines never corrupt the alt screen.
	Fallback io.Writer
}

// New returns a configured logger and a closer for its file, if any.
func New(opts Options) (*log.Logger, io.Closer, error) {
	lvl := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
		lvl = parsed
	}

	var out io.Writer = os.Stderr
	if opts.Fallback != nil {
		out = opts.Fallback
	}
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("logging: cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: cannot open log file: %w", err)
		}
		out = f
		closer = f
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          opts.Prefix,
	})
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
