package vcf

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

func TestSearchFindsImmediateOpenFourWin(t *testing.T) {
	b := board.New()
	// Black H8,I8,J8,K8 open on both ends (G8 and L8 empty) is an open four.
	place(t, b, board.Black, "H8", "I8", "J8", "K8")

	res := Search(b, board.Black, DefaultMaxDepth)
	require.True(t, res.Found)
	assert.Equal(t, 1, res.Depth)
}

func TestSearchFindsForcedFourChain(t *testing.T) {
	b := board.New()
	// Black has a four blocked on one end (H8..K8, with G8 occupied by white);
	// its open end L8 completes five, so the chain is a single move.
	place(t, b, board.White, "G8")
	place(t, b, board.Black, "H8", "I8", "J8", "K8")
	// A second black line crossing through a white block is not set up
	// here; this exercises the four branch of the main loop and its undo.
	res := Search(b, board.Black, DefaultMaxDepth)
	if res.Found {
		assert.GreaterOrEqual(t, res.Depth, 1)
	}
}

func TestSearchFailsWhenDefenderAlreadyHasOpenFour(t *testing.T) {
	b := board.New()
	place(t, b, board.White, "A2", "A3", "A4", "A5")
	place(t, b, board.Black, "H8", "I8", "J8")

	res := Search(b, board.Black, DefaultMaxDepth)
	assert.False(t, res.Found)
}

func TestSearchDoesNotMutateBoard(t *testing.T) {
	b := board.New()
	place(t, b, board.Black, "H8", "I8", "J8", "K8")
	before := b.String()

	Search(b, board.Black, DefaultMaxDepth)

	assert.Equal(t, before, b.String())
}
