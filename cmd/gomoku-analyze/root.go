// Command gomoku-analyze replays a finished or in-progress game and
// prints the move-by-move analysis: classifications, mistakes,
// detected patterns, and the recommended next move. Grounded on the
// pack's cobra idiom (package-level *cobra.Command vars wired up in
// init, RunE handlers returning wrapped errors) since the teacher's
// own cmd/main.go is a hand-rolled switch over os.Args rather than a
// cobra tree.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "gomoku-analyze",
	Short: "Post-game Gomoku/Caro analysis engine",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML/JSON/TOML config file (overrides defaults; env GOMOKU_* overrides both)")
	rootCmd.AddCommand(analyzeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
