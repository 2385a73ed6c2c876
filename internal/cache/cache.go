// Package cache memoizes threat.Recognize and eval.Evaluate results
// keyed by Zobrist hash, for callers that re-evaluate nearby positions
// repeatedly (e.g. an opening-book suggestion pass probing many
// candidate replies from the same position). Grounded on
// original_source's ai/analysis/analysis_cache.py for the cache-key and
// invalidate-on-mismatch shape, and on the teacher's
// internal/storage/analysis_cache.go for the Go-native hash-keyed-map
// form — generalized from the teacher's wall-clock/MD5 board-string
// cache to a Zobrist-hash-keyed cache evicted by search generation
// ("age-banded, not timestamp-banded," matching package zobrist's own
// replacement policy) instead of time.Duration.
package cache

import (
	"sync"

	"github.com/ianthereal/gomoku-analyzer/internal/board"
	"github.com/ianthereal/gomoku-analyzer/internal/eval"
	"github.com/ianthereal/gomoku-analyzer/internal/threat"
	"github.com/ianthereal/gomoku-analyzer/internal/zobrist"
)

type threatEntry struct {
	result threat.Result
	age    uint32
}

type evalEntry struct {
	result eval.Result
	age    uint32
}

// Cache is the one internally-synchronized type in this engine; every
// other package assumes single-threaded per-call use, per spec.
type Cache struct {
	mu       sync.Mutex
	hasher   *zobrist.Hasher
	capacity int
	age      uint32
	threats  map[zobrist.Hash]threatEntry
	evals    map[zobrist.Hash]evalEntry
}

// New constructs a Cache bounded to capacity entries per sub-map, sharing
// hasher with whatever Search or Analyzer keys positions the same way.
func New(hasher *zobrist.Hasher, capacity int) *Cache {
	if capacity <= 0 {
		capacity = 4096
	}
	return &Cache{
		hasher:   hasher,
		capacity: capacity,
		threats:  make(map[zobrist.Hash]threatEntry, capacity),
		evals:    make(map[zobrist.Hash]evalEntry, capacity),
	}
}

// NewGeneration bumps the age counter. Callers call this once per
// analysis run (the same granularity as zobrist.Table.NewSearch) so
// eviction can identify entries left over from a previous run.
func (c *Cache) NewGeneration() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.age++
}

func (c *Cache) key(b *board.Board, player board.Stone) zobrist.Hash {
	return c.hasher.Hash(b, player)
}

// Threat returns threat.Recognize(b, player), computing and storing it
// on a miss.
func (c *Cache) Threat(b *board.Board, player board.Stone) threat.Result {
	k := c.key(b, player)

	c.mu.Lock()
	if e, ok := c.threats[k]; ok {
		c.mu.Unlock()
		return e.result
	}
	c.mu.Unlock()

	result := threat.Recognize(b, player)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictThreatsIfFull()
	c.threats[k] = threatEntry{result: result, age: c.age}
	return result
}

// Eval returns eval.Evaluate(b, player), computing and storing it on a
// miss.
func (c *Cache) Eval(b *board.Board, player board.Stone) eval.Result {
	k := c.key(b, player)

	c.mu.Lock()
	if e, ok := c.evals[k]; ok {
		c.mu.Unlock()
		return e.result
	}
	c.mu.Unlock()

	result := eval.Evaluate(b, player)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictEvalsIfFull()
	c.evals[k] = evalEntry{result: result, age: c.age}
	return result
}

// evictThreatsIfFull drops every entry older than the current
// generation; if that still leaves the map full (a single long-running
// generation exceeding capacity) it falls back to dropping one arbitrary
// entry.
func (c *Cache) evictThreatsIfFull() {
	if len(c.threats) < c.capacity {
		return
	}
	for k, e := range c.threats {
		if e.age < c.age {
			delete(c.threats, k)
		}
	}
	if len(c.threats) >= c.capacity {
		for k := range c.threats {
			delete(c.threats, k)
			break
		}
	}
}

func (c *Cache) evictEvalsIfFull() {
	if len(c.evals) < c.capacity {
		return
	}
	for k, e := range c.evals {
		if e.age < c.age {
			delete(c.evals, k)
		}
	}
	if len(c.evals) >= c.capacity {
		for k := range c.evals {
			delete(c.evals, k)
			break
		}
	}
}

// Stats reports current occupancy, for diagnostics/logging.
type Stats struct {
	ThreatEntries int
	EvalEntries   int
	Capacity      int
	Generation    uint32
}

func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		ThreatEntries: len(c.threats),
		EvalEntries:   len(c.evals),
		Capacity:      c.capacity,
		Generation:    c.age,
	}
}
