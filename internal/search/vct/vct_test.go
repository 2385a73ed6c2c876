package vct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianthereal/gomoku-analyzer/internal/board"
)

func place(t *testing.T, b *board.Board, s board.Stone, notations ...string) {
	t.Helper()
	for _, n := range notations {
		c, err := board.ParseCoordinate(n)
		require.NoError(t, err)
		b.PlaceStone(c, s)
	}
}

func TestSearchPrefersVCFWhenAvailable(t *testing.T) {
	b := board.New()
	place(t, b, board.Black, "H8", "I8", "J8", "K8")

	res := Search(b, board.Black, DefaultMaxDepth)
	require.True(t, res.Found)
	assert.True(t, res.IsVCF)
}

func TestSearchNoThreatsFindsNothing(t *testing.T) {
	b := board.New()
	place(t, b, board.Black, "H8")

	res := Search(b, board.Black, DefaultMaxDepth)
	assert.False(t, res.Found)
}

func TestSearchDoesNotMutateBoard(t *testing.T) {
	b := board.New()
	place(t, b, board.Black, "H8", "I8", "J8")
	before := b.String()

	Search(b, board.Black, DefaultMaxDepth)

	assert.Equal(t, before, b.String())
}
