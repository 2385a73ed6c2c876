package minimax

import (
	"testing"
	"time"

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

func TestBestMovesFindsWinningCompletion(t *testing.T) {
	b := board.New()
	place(t, b, board.Black, "H8", "I8", "J8", "K8")
	place(t, b, board.White, "A1", "A2")

	s := New()
	res := s.BestMoves(b, board.Black, 2)

	c, err := board.ParseCoordinate(res.Best.String())
	require.NoError(t, err)
	assert.True(t, c.Valid())
	assert.GreaterOrEqual(t, res.Score, WinThreshold)
}

func TestBestMovesOnEmptyBoardPicksCenter(t *testing.T) {
	b := board.New()
	s := New()
	res := s.BestMoves(b, board.Black, 1)

	center := board.Size / 2
	assert.Equal(t, center, res.Best.Row)
	assert.Equal(t, center, res.Best.Col)
}

func TestBestMovesDoesNotMutateBoard(t *testing.T) {
	b := board.New()
	place(t, b, board.Black, "H8")
	place(t, b, board.White, "I9")
	before := b.String()

	s := New()
	s.BestMoves(b, board.Black, 2)

	assert.Equal(t, before, b.String())
}

func TestPackageBestMovesReturnsOneCandidate(t *testing.T) {
	b := board.New()
	place(t, b, board.Black, "H8", "I8", "J8", "K8")

	candidates, err := BestMoves(b, board.Black, Config{MaxDepth: 2})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.GreaterOrEqual(t, candidates[0].Score, WinThreshold)
	assert.False(t, candidates[0].TimeBudgetExceeded)
}

func TestPackageBestMovesReturnsTopKCandidatesRankedByScore(t *testing.T) {
	b := board.New()
	place(t, b, board.Black, "H8", "I8")
	place(t, b, board.White, "A1", "A2")

	candidates, err := BestMoves(b, board.Black, Config{MaxDepth: 2, TopK: 3})
	require.NoError(t, err)
	require.Len(t, candidates, 3)
	for i := 1; i < len(candidates); i++ {
		assert.LessOrEqual(t, candidates[i].Score, candidates[i-1].Score)
	}
	seen := make(map[board.Coordinate]bool)
	for _, c := range candidates {
		assert.False(t, seen[c.Move], "candidates must be distinct moves")
		seen[c.Move] = true
	}
}

func TestPackageBestMovesRejectsNilBoard(t *testing.T) {
	_, err := BestMoves(nil, board.Black, Config{MaxDepth: 2})
	assert.ErrorIs(t, err, ErrNilBoard)
}

func TestBestMovesWithBudgetReturnsCompletedDepthUnderBudget(t *testing.T) {
	b := board.New()
	place(t, b, board.Black, "H8", "I8", "J8", "K8")

	s := New()
	res, exceeded := s.BestMovesWithBudget(b, board.Black, 2, time.Second)
	assert.False(t, exceeded)
	assert.GreaterOrEqual(t, res.Score, WinThreshold)
}

func TestBestMovesWithBudgetZeroMeansUnbounded(t *testing.T) {
	b := board.New()
	s := New()
	res, exceeded := s.BestMovesWithBudget(b, board.Black, 1, 0)
	assert.False(t, exceeded)
	assert.Equal(t, board.Size/2, res.Best.Row)
}
