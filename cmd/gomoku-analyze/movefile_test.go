package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianthereal/gomoku-analyzer/internal/board"
)

func TestLoadMovesParsesCoordinatesAndStones(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.json")
	contents := `[{"coordinate":"H8","stone":"black"},{"coordinate":"H9","stone":"o"}]`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	moves, err := loadMoves(path)
	require.NoError(t, err)
	require.Len(t, moves, 2)
	assert.Equal(t, board.Black, moves[0].Stone)
	assert.Equal(t, board.White, moves[1].Stone)
	assert.Equal(t, 1, moves[0].Ordinal)
	assert.Equal(t, 2, moves[1].Ordinal)
}

func TestLoadMovesRejectsUnknownStoneTag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.json")
	contents := `[{"coordinate":"H8","stone":"purple"}]`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	_, err := loadMoves(path)
	assert.Error(t, err)
}

func TestLoadMovesRejectsMissingFile(t *testing.T) {
	_, err := loadMoves(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestParseStoneAcceptsShortTags(t *testing.T) {
	s, err := parseStone("x")
	require.NoError(t, err)
	assert.Equal(t, board.Black, s)

	s, err = parseStone("O")
	require.NoError(t, err)
	assert.Equal(t, board.White, s)
}
