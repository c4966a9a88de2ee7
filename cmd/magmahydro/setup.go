package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/magmahydro/internal/config"
	"github.com/vovakirdan/magmahydro/internal/logging"
)

// Flags shared by play and serve
var (
	flagConfig    string
	flagPreset    string
	flagLevelsDir string
)

// loadGameConfig loads the config file, applies the preset and the --fps
// override.
func loadGameConfig() (config.GameConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)

	if flagFPS != 0 {
		cfg.Play.TickRate = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("after flags: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger. fallback receives output when no
// --log-file is given.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, io.Closer, error) {
	return logging.New(logging.Options{
		Level:    flagLogLevel,
		File:     flagLogFile,
		Prefix:   prefix,
		Fallback: fallback,
	})
}
