package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ianthereal/gomoku-analyzer/internal/analyzer"
	"github.com/ianthereal/gomoku-analyzer/internal/config"
	"github.com/ianthereal/gomoku-analyzer/internal/storage"
)

var (
	analyzeGameType    string
	analyzeLanguage    string
	analyzeRatingBlack int
	analyzeRatingWhite int
	analyzeFast        bool
	analyzeJSON        bool
	analyzeVerbose     bool
	analyzeSavePath    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <movefile>",
	Short: "Analyze a move list and print the per-ply verdict",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeGameType, "game-type", "", "ranked, tournament, or casual (overrides config)")
	analyzeCmd.Flags().StringVar(&analyzeLanguage, "language", "", "en, vi, zh, or ja (overrides config)")
	analyzeCmd.Flags().IntVar(&analyzeRatingBlack, "rating-black", 0, "Black player's rating, 0 for unrated")
	analyzeCmd.Flags().IntVar(&analyzeRatingWhite, "rating-white", 0, "White player's rating, 0 for unrated")
	analyzeCmd.Flags().BoolVar(&analyzeFast, "fast", false, "use the heuristic single-ply evaluator instead of minimax")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the full result as JSON instead of a text summary")
	analyzeCmd.Flags().BoolVar(&analyzeVerbose, "verbose", false, "enable debug-level logging")
	analyzeCmd.Flags().StringVar(&analyzeSavePath, "save", "", "write the full result as JSON to this path in addition to printing it")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeVerbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("game-type") {
		cfg.GameType = analyzeGameType
	}
	if cmd.Flags().Changed("language") {
		cfg.Language = analyzeLanguage
	}
	if cmd.Flags().Changed("fast") {
		cfg.FastMode = analyzeFast
	}

	moves, err := loadMoves(args[0])
	if err != nil {
		return err
	}

	opts := cfg.Options([2]int{analyzeRatingBlack, analyzeRatingWhite})
	result, err := analyzer.Analyze(analyzer.Input{Moves: moves}, opts)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	if analyzeSavePath != "" {
		if err := storage.SaveResult(analyzeSavePath, result); err != nil {
			return err
		}
	}

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printSummary(result)
	return nil
}

func printSummary(result analyzer.Result) {
	fmt.Printf("analyzed %d plies in %dms\n", len(result.Timeline), result.ElapsedMillis)
	for _, entry := range result.Timeline {
		fmt.Printf("  %3d. %s %-4s %-10s score=%-7d role=%s\n",
			entry.Ordinal, entry.Stone, entry.Coordinate, entry.Classification, entry.Score, entry.Role)
	}

	if len(result.Mistakes) > 0 {
		fmt.Println("mistakes:")
		for _, m := range result.Mistakes {
			fmt.Printf("  ply %d: %s (%s, score loss %d, better: %s)\n",
				m.Ordinal, m.Category, m.Severity, m.ScoreLoss, m.BestAlternative)
		}
	}

	if result.Opening != nil {
		fmt.Printf("opening: %s (%s)\n", result.Opening.Name, result.Opening.Evaluation)
		for _, m := range result.OpeningMistakes {
			fmt.Printf("  opening deviation at ply %d: %s\n", m.MoveNumber, m.Explanation)
		}
	}

	for _, insight := range result.Summary.Insights {
		fmt.Printf("insight: %s\n", insight)
	}

	if result.BestNextMove != nil {
		fmt.Printf("best next move: %s\n", *result.BestNextMove)
	}
}
