package zobrist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianthereal/gomoku-analyzer/internal/board"
)

func TestIdenticalPositionsHashEqual(t *testing.T) {
	h1 := New()
	h2 := New()

	b1 := board.New()
	c, err := board.ParseCoordinate("H8")
	require.NoError(t, err)
	b1.PlaceStone(c, board.Black)

	b2 := board.New()
	b2.PlaceStone(c, board.Black)

	assert.Equal(t, h1.Hash(b1, board.White), h2.Hash(b2, board.White))
}

func TestIncrementalUpdateMatchesFullHash(t *testing.T) {
	h := New()
	b := board.New()
	c, err := board.ParseCoordinate("H8")
	require.NoError(t, err)

	before := h.Hash(b, board.Black)
	b.PlaceStone(c, board.Black)
	after := h.Hash(b, board.Black)

	incremental := Update(before, h.KeyFor(c, board.Black))
	assert.Equal(t, after, incremental)
}

func TestTableProbeRespectsBoundWindow(t *testing.T) {
	tbl := NewTable(16)
	hsh := Hash(42)
	best := board.Coordinate{Row: 7, Col: 7}

	tbl.Store(hsh, 4, 100, LowerBound, best)

	_, usable, found := tbl.Probe(hsh, 4, 0, 50)
	require.True(t, found)
	assert.True(t, usable, "lower bound score 100 >= beta 50 should be usable")

	_, usable, found = tbl.Probe(hsh, 4, 0, 200)
	require.True(t, found)
	assert.False(t, usable, "lower bound score 100 < beta 200 should not be usable")
}

func TestTableReplacementPrefersDeeperAndNewerAge(t *testing.T) {
	tbl := NewTable(16)
	hsh := Hash(7)
	a := board.Coordinate{Row: 0, Col: 0}
	b := board.Coordinate{Row: 1, Col: 1}

	tbl.Store(hsh, 2, 10, Exact, a)
	tbl.Store(hsh, 1, 20, Exact, b) // shallower, should not replace

	e, _, found := tbl.Probe(hsh, 0, -1000, 1000)
	require.True(t, found)
	assert.Equal(t, a, e.Best)

	tbl.NewSearch()
	tbl.Store(hsh, 1, 30, Exact, b) // older age, should replace regardless of depth
	e, _, found = tbl.Probe(hsh, 0, -1000, 1000)
	require.True(t, found)
	assert.Equal(t, b, e.Best)
}

func TestEvictOldestClearsStaleGeneration(t *testing.T) {
	tbl := NewTable(16)
	tbl.Store(Hash(1), 3, 0, Exact, board.Coordinate{})
	tbl.NewSearch()
	tbl.Store(Hash(2), 3, 0, Exact, board.Coordinate{})

	evicted := tbl.EvictOldest()
	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, tbl.Len())
}
