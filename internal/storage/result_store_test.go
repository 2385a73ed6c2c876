package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianthereal/gomoku-analyzer/internal/analyzer"
)

func TestSaveAndLoadResultRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	original := analyzer.Result{
		Tier:          "ranked",
		ElapsedMillis: 12,
	}

	require.NoError(t, SaveResult(path, original))
	assert.True(t, ResultExists(path))

	loaded, err := LoadResult(path)
	require.NoError(t, err)
	assert.Equal(t, original.Tier, loaded.Tier)
	assert.Equal(t, original.ElapsedMillis, loaded.ElapsedMillis)
}

func TestLoadResultMissingFileErrors(t *testing.T) {
	_, err := LoadResult(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestResultExistsFalseForMissingPath(t *testing.T) {
	assert.False(t, ResultExists(filepath.Join(t.TempDir(), "missing.json")))
}
