package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianthereal/gomoku-analyzer/internal/board"
	"github.com/ianthereal/gomoku-analyzer/internal/zobrist"
)

func TestThreatCachesByPosition(t *testing.T) {
	b := board.New()
	c, err := board.ParseCoordinate("H8")
	require.NoError(t, err)
	b.PlaceStone(c, board.Black)

	ch := New(zobrist.New(), 16)
	first := ch.Threat(b, board.Black)
	second := ch.Threat(b, board.Black)
	assert.Equal(t, first, second)

	stats := ch.Stats()
	assert.Equal(t, 1, stats.ThreatEntries)
}

func TestEvalCachesByPosition(t *testing.T) {
	b := board.New()
	ch := New(zobrist.New(), 16)

	first := ch.Eval(b, board.Black)
	second := ch.Eval(b, board.Black)
	assert.Equal(t, first, second)

	stats := ch.Stats()
	assert.Equal(t, 1, stats.EvalEntries)
}

func TestDistinctPlayersCacheSeparately(t *testing.T) {
	b := board.New()
	cc, err := board.ParseCoordinate("H8")
	require.NoError(t, err)
	b.PlaceStone(cc, board.Black)

	ch := New(zobrist.New(), 16)
	ch.Threat(b, board.Black)
	ch.Threat(b, board.White)

	stats := ch.Stats()
	assert.Equal(t, 2, stats.ThreatEntries)
}

func TestEvictionDropsStaleGeneration(t *testing.T) {
	ch := New(zobrist.New(), 2)

	b1 := board.New()
	c1, _ := board.ParseCoordinate("A1")
	b1.PlaceStone(c1, board.Black)
	ch.Threat(b1, board.Black)

	b2 := board.New()
	c2, _ := board.ParseCoordinate("A2")
	b2.PlaceStone(c2, board.Black)
	ch.Threat(b2, board.Black)

	ch.NewGeneration()

	b3 := board.New()
	c3, _ := board.ParseCoordinate("A3")
	b3.PlaceStone(c3, board.Black)
	ch.Threat(b3, board.Black)

	stats := ch.Stats()
	assert.LessOrEqual(t, stats.ThreatEntries, 2)
}
