// Package storage persists an analyzer.Result to disk so a later
// invocation of the CLI (or another process) can reload a completed
// analysis without re-running the search. Adapted from the teacher's
// gamestate.go JSON-file save/load pair, generalized from one fixed
// gamestate.json to an arbitrary result path and from game.GameState
// to analyzer.Result.
package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ianthereal/gomoku-analyzer/internal/analyzer"
)

// SaveResult writes result to path as indented JSON.
func SaveResult(path string, result analyzer.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", path, err)
	}
	return nil
}

// LoadResult reads a result previously written by SaveResult.
func LoadResult(path string) (analyzer.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return analyzer.Result{}, fmt.Errorf("storage: read %s: %w", path, err)
	}
	var result analyzer.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return analyzer.Result{}, fmt.Errorf("storage: unmarshal %s: %w", path, err)
	}
	return result, nil
}

// ResultExists reports whether os.Stat succeeds on path; it does not
// check that path is a regular file or that it is readable.
func ResultExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
