package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/magmahydro/internal/level"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels",
	Long: `Shows the built-in levels, or the levels of a directory.

Files in --levels-dir that fail to parse or validate are listed with the
reason they were skipped.

Examples:
  magmahydro levels
  magmahydro levels --levels-dir ./levels`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

var flagListDir string

func init() {
	levelsCmd.Flags().StringVar(&flagListDir, "levels-dir", "", "List the levels of this directory")
}

func runLevels(_ *cobra.Command, _ []string) {
	var (
		levels  []*level.Level
		skipped []error
		err     error
	)
	if flagListDir != "" {
		levels, skipped, err = level.NewLoader(flagListDir).LoadAll()
	} else {
		levels, err = level.Catalog()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	if len(levels) == 0 {
		fmt.Println("No levels available.")
	} else {
		fmt.Println("Available levels:")
		fmt.Println()

		idLen, nameLen := 2, 4 // "ID", "Name"
		for _, l := range levels {
			idLen = max(idLen, len(l.ID))
			nameLen = max(nameLen, len(l.Name))
		}

		fmt.Printf("  %-*s  %-*s  %s\n", idLen, "ID", nameLen, "Name", "Size")
		fmt.Printf("  %-*s  %-*s  %s\n", idLen, "--", nameLen, "----", "----")
		for _, l := range levels {
			size := fmt.Sprintf("%dx%d", l.Board.Width(), l.Board.Height())
			fmt.Printf("  %-*s  %-*s  %s\n", idLen, l.ID, nameLen, l.Name, size)
		}
	}

	if len(skipped) > 0 {
		fmt.Println()
		fmt.Printf("Skipped %d file(s):\n", len(skipped))
		for _, e := range skipped {
			fmt.Printf("  %v\n", e)
		}
	}

	fmt.Println()
	fmt.Println("Run 'magmahydro play <id>' to play a level.")
}
