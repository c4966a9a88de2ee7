package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/magmahydro/internal/core"
	"github.com/vovakirdan/magmahydro/internal/level"
	"github.com/vovakirdan/magmahydro/internal/platform/tui"
	"github.com/vovakirdan/magmahydro/internal/storage"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play locally, both players on one keyboard",
	Long: `Open the level select, or start straight at the given level.

Controls:
  A / D / W        - Magma Boy left / right / jump
  Left/Right/Up    - Hydro Girl left / right / jump
  P                - Pause
  R                - Restart the level
  Ctrl+S           - Save a screenshot to ~/.magmahydro/screenshots
  Esc              - Back to the level select
  Q/Ctrl+C         - Quit

Difficulty presets:
  easy    - Longer coyote time, lighter gravity, quicker gates and doors
  normal  - The config as written
  hard    - Shorter coyote time, heavier gravity, slower gates and doors

Examples:
  magmahydro play
  magmahydro play 03-staircase
  magmahydro play --preset easy
  magmahydro play --config ./my-physics.yaml
  magmahydro play --levels-dir ./levels --watch`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagLevelsDir, "levels-dir", "", "Load levels from this directory instead of the built-in ones")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload level files when they change (needs --levels-dir)")
}

func runPlay(_ *cobra.Command, args []string) {
	if flagWatch && flagLevelsDir == "" {
		fmt.Fprintln(os.Stderr, "Error: --watch needs --levels-dir")
		os.Exit(1)
	}

	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	src := level.NewSource(flagLevelsDir)
	startLevel := ""
	if len(args) == 1 {
		startLevel = args[0]
		if _, lvlErr := src.ByID(startLevel); lvlErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", lvlErr)
			fmt.Fprintln(os.Stderr, "Run 'magmahydro levels' to see available levels.")
			os.Exit(1)
		}
	}

	// Logging must not write into the alt screen
	logger, logCloser, err := newLogger(io.Discard, "magmahydro")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	var watcher *level.Watcher
	if flagWatch {
		watcher, err = level.NewWatcher(flagLevelsDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error watching %s: %v\n", flagLevelsDir, err)
			os.Exit(1)
		}
		defer watcher.Close()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open records database: %v\n", err)
		// Play without records
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting", "levels", src.Dir(), "level", startLevel, "tick_rate", gameCfg.Play.TickRate)

	runErr := tui.Run(tui.SessionOptions{
		Source: src,
		Config: gameCfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: gameCfg.Play.TickRate,
		},
		Store:      store,
		Logger:     logger,
		Watcher:    watcher,
		StartLevel: startLevel,
	})
	if runErr != nil {
		logger.Error("session failed", "err", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
