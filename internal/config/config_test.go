package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianthereal/gomoku-analyzer/internal/analyzer"
)

func TestLoadWithNoPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gomoku.yaml")
	contents := "max_depth: 8\ngame_type: tournament\nfast_mode: true\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.MaxDepth)
	assert.Equal(t, "tournament", cfg.GameType)
	assert.True(t, cfg.FastMode)
	assert.Equal(t, Defaults().VCFDepth, cfg.VCFDepth)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOptionsMapsGameTypeAndLanguage(t *testing.T) {
	cfg := Defaults()
	cfg.GameType = "casual"
	cfg.Language = "ja"
	cfg.TimeBudget = 2 * time.Second

	opts := cfg.Options([2]int{1500, 1600})
	assert.Equal(t, analyzer.Casual, opts.GameType)
	assert.Equal(t, analyzer.LangJA, opts.Language)
	assert.Equal(t, [2]int{1500, 1600}, opts.PlayerRatings)
	assert.Equal(t, 2*time.Second, opts.TimeBudget)
}

func TestOptionsFallsBackToRankedAndEnglish(t *testing.T) {
	cfg := Defaults()
	cfg.GameType = "unknown"
	cfg.Language = "unknown"

	opts := cfg.Options([2]int{})
	assert.Equal(t, analyzer.Ranked, opts.GameType)
	assert.Equal(t, analyzer.LangEN, opts.Language)
}
