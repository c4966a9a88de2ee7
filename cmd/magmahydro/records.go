package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/magmahydro/internal/config"
	"github.com/vovakirdan/magmahydro/internal/game"
	"github.com/vovakirdan/magmahydro/internal/level"
	"github.com/vovakirdan/magmahydro/internal/storage"
)

var (
	flagClearRecords bool
	flagCoop         bool
)

var recordsCmd = &cobra.Command{
	Use:   "records [level]",
	Short: "Show best clears",
	Long: `Without a level, show a summary of every level that was cleared.
With a level, show its 10 fastest clears.

Examples:
  magmahydro records
  magmahydro records 02-gatehouse
  magmahydro records 02-gatehouse --clear
  magmahydro records --coop`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRecords,
}

func init() {
	recordsCmd.Flags().BoolVar(&flagClearRecords, "clear", false, "Delete the records of the given level")
	recordsCmd.Flags().BoolVar(&flagCoop, "coop", false, "Show recent online co-op matches")
}

func runRecords(_ *cobra.Command, args []string) {
	if flagClearRecords && len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Error: --clear needs a level")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening records database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	tickRate := flagFPS
	if tickRate == 0 {
		tickRate = config.DefaultConfig().Play.TickRate
	}

	switch {
	case flagCoop:
		err = printCoopRuns(store, tickRate)
	case len(args) == 0:
		err = printSummary(store, tickRate)
	case flagClearRecords:
		err = store.ClearRecords(args[0])
		if err == nil {
			fmt.Printf("Records of %s cleared.\n", args[0])
		}
	default:
		err = printLevelRecords(store, args[0], tickRate)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving records: %v\n", err)
		os.Exit(1)
	}
}

func levelName(id string) string {
	if lvl, err := level.ByID(id); err == nil {
		return lvl.Name
	}
	return id
}

func printSummary(store *storage.Store, tickRate int) error {
	levels, err := level.Catalog()
	if err != nil {
		return err
	}
	stats, err := store.AllLevelStats()
	if err != nil {
		return err
	}

	fmt.Println("Records")
	fmt.Println()
	if len(stats) == 0 {
		fmt.Println("No clears recorded yet.")
		fmt.Println()
		fmt.Println("Play 'magmahydro play' to set the first record!")
		return nil
	}

	fmt.Printf("  %-20s  %-6s  %-9s  %-9s  %s\n", "Level", "Clears", "Best", "Average", "Fewest deaths")
	fmt.Printf("  %-20s  %-6s  %-9s  %-9s  %s\n", "-----", "------", "----", "-------", "-------------")

	printed := make(map[string]bool, len(stats))
	printRow := func(id string, s *storage.LevelStats) {
		fmt.Printf("  %-20s  %-6d  %-9s  %-9s  %d\n",
			levelName(id), s.Clears,
			game.FormatTicks(s.BestTicks, tickRate),
			game.FormatTicks(int(s.AvgTicks+0.5), tickRate),
			s.FewestDeaths)
		printed[id] = true
	}
	for _, l := range levels {
		if s := stats[l.ID]; s != nil && s.Clears > 0 {
			printRow(l.ID, s)
		}
	}
	// Levels from a --levels-dir that are not built in
	for id, s := range stats {
		if !printed[id] && s.Clears > 0 {
			printRow(id, s)
		}
	}
	return nil
}

func printLevelRecords(store *storage.Store, levelID string, tickRate int) error {
	clears, err := store.BestClears(levelID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("Best clears - %s\n", levelName(levelID))
	fmt.Println()

	if len(clears) == 0 {
		fmt.Println("No clears recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'magmahydro play %s' to set the first record!\n", levelID)
		return nil
	}

	fmt.Printf("  %-4s  %-9s  %-6s  %-6s  %s\n", "Rank", "Time", "Deaths", "Mode", "Date")
	fmt.Printf("  %-4s  %-9s  %-6s  %-6s  %s\n", "----", "----", "------", "----", "----")
	for i, c := range clears {
		fmt.Printf("  %-4d  %-9s  %-6d  %-6s  %s\n",
			i+1, game.FormatTicks(c.Ticks, tickRate), c.Deaths, c.Mode, c.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Best: %s\n", game.FormatTicks(clears[0].Ticks, tickRate))
	return nil
}

func printCoopRuns(store *storage.Store, tickRate int) error {
	runs, err := store.RecentCoopRuns(10)
	if err != nil {
		return err
	}

	fmt.Println("Recent co-op matches")
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No online matches recorded yet.")
		fmt.Println()
		fmt.Println("Start 'magmahydro serve' and pair up over SSH.")
		return nil
	}

	fmt.Printf("  %-20s  %-9s  %-6s  %-22s  %s\n", "Level", "Time", "Deaths", "Result", "Date")
	fmt.Printf("  %-20s  %-9s  %-6s  %-22s  %s\n", "-----", "----", "------", "------", "----")
	for _, r := range runs {
		result := r.EndReason
		if r.Completed {
			result = "cleared"
		}
		fmt.Printf("  %-20s  %-9s  %-6d  %-22s  %s\n",
			levelName(r.LevelID), game.FormatTicks(r.Ticks, tickRate), r.Deaths, result,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
