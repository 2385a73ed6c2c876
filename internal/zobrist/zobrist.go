// Package zobrist implements incremental position hashing and a bounded
// transposition table keyed by that hash, grounded on the replacement and
// probe policy of other_examples/9e68b1ca_herohde-morlock__pkg-search-transposition.go.go,
// adapted from chess (from/to/promotion moves) to Gomoku (single-cell
// moves) and from a lock-free multi-writer table to the single-writer
// table this engine's concurrency model (spec §5) calls for.
package zobrist

import (
	"math/rand"

	"github.com/ianthereal/gomoku-analyzer/internal/board"
)

// seed is fixed so hashing is reproducible across runs (spec §4.M:
// "the PRNG used by the Zobrist hasher is seeded from a fixed constant").
const seed = 0x67616d656b7579 // "gamekuy" as hex ballast, arbitrary and fixed

// Hash is a 64-bit position fingerprint.
type Hash uint64

// Hasher holds the per-(cell,stone) keys and the side-to-move key.
type Hasher struct {
	cellKeys [board.Size * board.Size][3]Hash // indexed by Stone (Empty unused)
	sideKey  Hash
}

// New constructs a Hasher with keys drawn from a seeded PRNG, so two
// Hashers built by New() always agree.
func New() *Hasher {
	r := rand.New(rand.NewSource(seed))
	h := &Hasher{}
	for i := range h.cellKeys {
		h.cellKeys[i][board.Black] = Hash(r.Uint64())
		h.cellKeys[i][board.White] = Hash(r.Uint64())
	}
	h.sideKey = Hash(r.Uint64())
	return h
}

func cellIndex(c board.Coordinate) int {
	return c.Row*board.Size + c.Col
}

// KeyFor returns the XOR key for placing stone s at c. s must be Black or White.
func (h *Hasher) KeyFor(c board.Coordinate, s board.Stone) Hash {
	return h.cellKeys[cellIndex(c)][s]
}

// SideKey returns the key XORed in when it is White's turn to move (an
// arbitrary but fixed convention — Black-to-move hashes do not include it).
func (h *Hasher) SideKey() Hash {
	return h.sideKey
}

// Hash computes the full position hash: the XOR of every occupied cell's
// key, plus the side key if sideToMove is White.
func (h *Hasher) Hash(b *board.Board, sideToMove board.Stone) Hash {
	var hash Hash
	b.EachCell(func(c board.Coordinate, s board.Stone) {
		hash ^= h.KeyFor(c, s)
	})
	if sideToMove == board.White {
		hash ^= h.sideKey
	}
	return hash
}

// Update returns the incremental hash after placing s at c: a single XOR,
// no rescan of the board.
func Update(prior Hash, key Hash) Hash {
	return prior ^ key
}
