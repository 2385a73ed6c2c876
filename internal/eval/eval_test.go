package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianthereal/gomoku-analyzer/internal/board"
)

func TestEvaluateMoveDoesNotMutateBoard(t *testing.T) {
	b := board.New()
	c, err := board.ParseCoordinate("H8")
	require.NoError(t, err)

	before := b.String()
	EvaluateMove(b, c, board.Black)
	assert.Equal(t, before, b.String())
	assert.True(t, b.IsEmpty(c))
}

func TestWinProbabilityClampedAndMonotone(t *testing.T) {
	assert.GreaterOrEqual(t, WinProbability(-1_000_000), 0.05)
	assert.LessOrEqual(t, WinProbability(1_000_000), 0.95)
	assert.Less(t, WinProbability(-500), WinProbability(0))
	assert.Less(t, WinProbability(0), WinProbability(500))
}

func TestEvaluateFavorsCenterWhenThreatsEqual(t *testing.T) {
	b1 := board.New()
	c1, _ := board.ParseCoordinate("H8") // center
	b1.PlaceStone(c1, board.Black)

	b2 := board.New()
	c2, _ := board.ParseCoordinate("A1") // corner
	b2.PlaceStone(c2, board.Black)

	r1 := Evaluate(b1, board.Black)
	r2 := Evaluate(b2, board.Black)
	assert.Greater(t, r1.Score, r2.Score)
}
