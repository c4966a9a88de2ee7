// magmahydro is a two-player co-op puzzle platformer for the terminal.
// Magma Boy and Hydro Girl each have to reach their own door; lava kills
// Hydro Girl, water kills Magma Boy and green goo kills both.
//
// Usage:
//
//	magmahydro levels            - List the levels
//	magmahydro play [level]      - Play, starting at the level select or a level
//	magmahydro records [level]   - Show best clears
//	magmahydro serve             - Start the SSH server for remote and online co-op play
//
// Global flags:
//
//	--fps <rate>        - Override the tick rate from the config
//	--db <path>         - Set database path (default: ~/.magmahydro/records.db)
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Append logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "magmahydro",
	Short: "Magma Boy & Hydro Girl - a co-op puzzle platformer in your terminal",
	Long: `Magma Boy & Hydro Girl is a two-player cooperative puzzle platformer.

Guide both characters to their doors. Magma Boy walks through lava but
dies in water; Hydro Girl is the other way around; green goo kills both.
Stand on plates to open gates for your partner.

Available commands:
  levels   - List the levels
  play     - Play locally, both players on one keyboard
  records  - View best clears
  serve    - Start the SSH server for remote and online co-op play

Examples:
  magmahydro play
  magmahydro play 02-gatehouse --preset easy
  magmahydro play --levels-dir ./mylevels --watch
  magmahydro records 02-gatehouse
  magmahydro serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = play.tick_rate from the config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.magmahydro/records.db", "Path to records database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(serveCmd)
}
