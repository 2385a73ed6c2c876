package threat

import (
	"sort"

	"github.com/ianthereal/gomoku-analyzer/internal/board"
)

// detectDoubleThreats buckets single threats by every cell they occupy or
// extend to and emits one double-threat record per bucket whose strongest
// pair in different directions is one of the named shapes, classified by
// the stronger + weaker pairing (spec §4.B).
func detectDoubleThreats(patterns []Pattern) (map[DoubleKind]int, []DoubleThreat) {
	counts := make(map[DoubleKind]int)
	var out []DoubleThreat

	// A threat's "key position" candidates are every cell that participates
	// in it: its own stones (a move just played may complete two different
	// patterns at once — the classic "double three" fork) and its
	// extension cells (a still-empty cell whose future occupation would
	// complete two different patterns at once).
	buckets := make(map[board.Coordinate][]Pattern)
	for _, p := range patterns {
		if p.Kind == Five {
			continue
		}
		for _, c := range p.Positions {
			buckets[c] = append(buckets[c], p)
		}
		for _, c := range p.Extensions {
			buckets[c] = append(buckets[c], p)
		}
	}

	keys := make([]board.Coordinate, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Row != keys[j].Row {
			return keys[i].Row < keys[j].Row
		}
		return keys[i].Col < keys[j].Col
	})

	for _, key := range keys {
		bucket := buckets[key]
		primary, ancillary, ok := strongestPair(bucket)
		if !ok {
			continue
		}
		kind, ok := classifyDouble(primary.Kind, ancillary.Kind)
		if !ok {
			continue
		}
		out = append(out, DoubleThreat{Kind: kind, Key: key, Primary: primary, Ancillary: ancillary})
		counts[kind]++
	}

	return counts, out
}

// strongestPair returns the two strongest patterns in the bucket that lie
// in different directions, preferring the highest-priority (lowest Kind
// value) combination available.
func strongestPair(bucket []Pattern) (Pattern, Pattern, bool) {
	sorted := append([]Pattern(nil), bucket...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Kind < sorted[j].Kind })

	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[i].Direction != sorted[j].Direction {
				return sorted[i], sorted[j], true
			}
		}
	}
	return Pattern{}, Pattern{}, false
}

// classifyDouble labels a bucket's strongest pairing as a double-threat, or
// reports ok=false when the pairing isn't one of the three named shapes — a
// four paired with a weak non-three (e.g. an open-two) is a plain four-count,
// not a fork, and must not be double-counted as FourThree; likewise a
// three paired with an open-two is not a DoubleThree.
func classifyDouble(a, b Kind) (kind DoubleKind, ok bool) {
	aFour, bFour := a.IsFourType(), b.IsFourType()
	switch {
	case aFour && bFour:
		return DoubleFour, true
	case aFour != bFour:
		if a.IsThreeType() || b.IsThreeType() {
			return FourThree, true
		}
		return 0, false
	default:
		if a.IsThreeType() && b.IsThreeType() {
			return DoubleThree, true
		}
		return 0, false
	}
}
