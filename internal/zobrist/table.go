package zobrist

import (
	"github.com/ianthereal/gomoku-analyzer/internal/board"
)

// Bound tags whether a stored score is exact or only one-sided, following
// the alpha-beta convention the minimax driver needs to decide whether a
// probe is usable at the current (alpha, beta) window.
type Bound uint8

const (
	Exact Bound = iota
	LowerBound
	UpperBound
)

// Entry is one transposition table slot.
type Entry struct {
	Hash  Hash
	Depth int
	Score int
	Bound Bound
	Best  board.Coordinate
	Age   uint32
}

// Table is a fixed-size, open-addressed (direct-mapped by hash modulo
// capacity) transposition table. It is not safe for concurrent use — per
// spec §5 the engine is single-threaded per analysis call, so, unlike its
// herohde/morlock ancestor, this table uses plain field writes instead of
// atomic pointer swaps.
type Table struct {
	entries []Entry
	present []bool
	mask    uint64
	age     uint32
}

// NewTable allocates a table with capacity rounded up to the next power of
// two, at least 1024 entries.
func NewTable(capacityHint int) *Table {
	n := uint64(1024)
	for n < uint64(capacityHint) {
		n <<= 1
	}
	return &Table{
		entries: make([]Entry, n),
		present: make([]bool, n),
		mask:    n - 1,
	}
}

func (t *Table) slot(h Hash) uint64 {
	return uint64(h) & t.mask
}

// NewSearch bumps the age counter; call this once per search root so the
// replacement policy can identify entries from older searches.
func (t *Table) NewSearch() {
	t.age++
}

// Probe looks up hash. It reports a usable score only when the stored
// depth is at least requestedDepth and the bound is compatible with the
// (alpha, beta) window; otherwise it still returns the best move (for
// ordering) with usable=false.
func (t *Table) Probe(hash Hash, requestedDepth, alpha, beta int) (entry Entry, usable bool, found bool) {
	idx := t.slot(hash)
	if !t.present[idx] || t.entries[idx].Hash != hash {
		return Entry{}, false, false
	}
	e := t.entries[idx]
	if e.Depth < requestedDepth {
		return e, false, true
	}
	switch e.Bound {
	case Exact:
		return e, true, true
	case LowerBound:
		return e, e.Score >= beta, true
	case UpperBound:
		return e, e.Score <= alpha, true
	default:
		return e, false, true
	}
}

// Store writes an entry, subject to the replacement policy: replace an
// empty slot, a shallower entry, or one from an older search generation.
func (t *Table) Store(hash Hash, depth, score int, bound Bound, best board.Coordinate) {
	idx := t.slot(hash)
	fresh := Entry{Hash: hash, Depth: depth, Score: score, Bound: bound, Best: best, Age: t.age}

	if !t.present[idx] {
		t.entries[idx] = fresh
		t.present[idx] = true
		return
	}
	existing := t.entries[idx]
	if fresh.Depth >= existing.Depth || existing.Age < t.age {
		t.entries[idx] = fresh
	}
}

// Len reports how many slots are in use.
func (t *Table) Len() int {
	n := 0
	for _, p := range t.present {
		if p {
			n++
		}
	}
	return n
}

// Cap reports total slot capacity.
func (t *Table) Cap() int {
	return len(t.entries)
}

// EvictOldest removes every entry older than the current search
// generation — the bulk eviction spec §4.D calls for "on table-full
// pressure in very long games." Entries of the current generation are
// kept whatever their depth; no shallowest-first eviction follows.
func (t *Table) EvictOldest() int {
	evicted := 0
	for i := range t.entries {
		if t.present[i] && t.entries[i].Age < t.age {
			t.present[i] = false
			evicted++
		}
	}
	return evicted
}
