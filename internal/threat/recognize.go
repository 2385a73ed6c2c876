package threat

import "github.com/ianthereal/gomoku-analyzer/internal/board"

// Recognize scans every line on b for player's threat patterns and the
// double threats they form. It is a pure function of (b, player): it
// never mutates b and never errors — an invalid/occupied cell at the
// recognizer's boundary is simply not a threat.
func Recognize(b *board.Board, player board.Stone) Result {
	res := newResult(player)
	seen := make(map[[225]bool]bool)

	for _, d := range board.Directions {
		for _, start := range board.LineStarts(d) {
			line := buildLine(start, d)
			if len(line) < 2 {
				continue
			}
			stones := make([]board.Stone, len(line))
			for i, c := range line {
				stones[i] = b.At(c)
			}

			patterns := scanLine(line, stones, player, d)
			for _, p := range patterns {
				key := positionKey(p.Positions)
				if seen[key] {
					continue
				}
				seen[key] = true
				res.Counts[p.Kind]++
				res.Patterns = append(res.Patterns, p)
			}
		}
	}

	res.DoubleCounts, res.DoubleThreats = detectDoubleThreats(res.Patterns)

	total := 0
	for k, c := range res.Counts {
		total += Weights[k] * c
	}
	for k, c := range res.DoubleCounts {
		total += DoubleWeights[k] * c
	}
	res.Score = total

	return res
}

func buildLine(start board.Coordinate, d board.Direction) []board.Coordinate {
	var line []board.Coordinate
	c := start
	for c.Valid() {
		line = append(line, c)
		c = d.Step(c, 1)
	}
	return line
}

// scanLine applies the contiguous-run pass and the windowed broken/jump
// pass to a single line, then suppresses anything a five on this line
// subsumes and any broken-three fully contained in a broken-four window.
func scanLine(line []board.Coordinate, stones []board.Stone, player board.Stone, d board.Direction) []Pattern {
	runs, fiveRanges := contiguousRunPass(line, stones, player, d)
	broken4, broken4Ranges := brokenWindowPass(line, stones, player, d, 5, []int{1, 2, 3}, BrokenFour)
	broken3, broken3Ranges := brokenWindowPass(line, stones, player, d, 4, []int{1, 2}, BrokenThree)
	jumps := jumpWindowPass(line, stones, player, d)

	var out []Pattern
	out = append(out, runs...)

	for i, p := range broken4 {
		if rangeOverlapsAny(broken4Ranges[i], fiveRanges) {
			continue
		}
		out = append(out, p)
	}

	for i, p := range broken3 {
		r := broken3Ranges[i]
		if rangeOverlapsAny(r, fiveRanges) {
			continue
		}
		if containedInAny(r, broken4Ranges) {
			continue
		}
		out = append(out, p)
	}

	fiveCells := fiveRangePatterns(line, fiveRanges)
	for _, p := range jumps {
		if overlaps(p.Positions, fiveCells) {
			continue
		}
		out = append(out, p)
	}

	return out
}

type lineRange struct{ lo, hi int } // [lo, hi)

func rangeOverlapsAny(r lineRange, ranges []lineRange) bool {
	for _, o := range ranges {
		if r.lo < o.hi && o.lo < r.hi {
			return true
		}
	}
	return false
}

func containedInAny(r lineRange, ranges []lineRange) bool {
	for _, o := range ranges {
		if o.lo <= r.lo && r.hi <= o.hi {
			return true
		}
	}
	return false
}

func fiveRangePatterns(line []board.Coordinate, ranges []lineRange) []board.Coordinate {
	var out []board.Coordinate
	for _, r := range ranges {
		out = append(out, line[r.lo:r.hi]...)
	}
	return out
}

// contiguousRunPass groups consecutive player stones and classifies each
// maximal run by length and open-endedness.
func contiguousRunPass(line []board.Coordinate, stones []board.Stone, player board.Stone, d board.Direction) ([]Pattern, []lineRange) {
	var patterns []Pattern
	var fiveRanges []lineRange
	n := len(line)

	i := 0
	for i < n {
		if stones[i] != player {
			i++
			continue
		}
		j := i
		for j < n && stones[j] == player {
			j++
		}
		k := j - i

		leftOpen := i-1 >= 0 && stones[i-1] == board.Empty
		rightOpen := j < n && stones[j] == board.Empty

		positions := append([]board.Coordinate(nil), line[i:j]...)

		switch {
		case k >= 5:
			fiveRanges = append(fiveRanges, lineRange{i, j})
			patterns = append(patterns, Pattern{Stone: player, Kind: Five, Direction: d, Positions: positions})
		case k == 4:
			switch {
			case leftOpen && rightOpen:
				patterns = append(patterns, Pattern{
					Stone: player, Kind: OpenFour, Direction: d, Positions: positions,
					Extensions: []board.Coordinate{line[i-1], line[j]},
				})
			case leftOpen || rightOpen:
				ext := line[j]
				if leftOpen {
					ext = line[i-1]
				}
				patterns = append(patterns, Pattern{
					Stone: player, Kind: Four, Direction: d, Positions: positions,
					Extensions: []board.Coordinate{ext},
				})
			}
		case k == 3:
			switch {
			case leftOpen && rightOpen:
				patterns = append(patterns, Pattern{
					Stone: player, Kind: OpenThree, Direction: d, Positions: positions,
					Extensions: []board.Coordinate{line[i-1], line[j]},
				})
			case leftOpen || rightOpen:
				ext := line[j]
				if leftOpen {
					ext = line[i-1]
				}
				patterns = append(patterns, Pattern{
					Stone: player, Kind: Three, Direction: d, Positions: positions,
					Extensions: []board.Coordinate{ext},
				})
			}
		case k == 2:
			if leftOpen && rightOpen {
				patterns = append(patterns, Pattern{
					Stone: player, Kind: OpenTwo, Direction: d, Positions: positions,
					Extensions: []board.Coordinate{line[i-1], line[j]},
				})
			}
		}

		i = j
	}

	return patterns, fiveRanges
}

// brokenWindowPass slides a fixed-width window along the line and matches
// it against "exactly one gap, interior, rest player stones, no opponent
// stones" templates — used for both broken-four (width 5) and
// broken-three (width 4).
func brokenWindowPass(line []board.Coordinate, stones []board.Stone, player board.Stone, d board.Direction, width int, interiorGapIdx []int, kind Kind) ([]Pattern, []lineRange) {
	var patterns []Pattern
	var ranges []lineRange
	n := len(line)

	allowed := make(map[int]bool, len(interiorGapIdx))
	for _, g := range interiorGapIdx {
		allowed[g] = true
	}

	for w := 0; w+width <= n; w++ {
		playerCount, emptyCount, oppCount := 0, 0, 0
		gapIdx := -1
		for idx := 0; idx < width; idx++ {
			switch stones[w+idx] {
			case player:
				playerCount++
			case board.Empty:
				emptyCount++
				gapIdx = idx
			default:
				oppCount++
			}
		}
		if oppCount > 0 || emptyCount != 1 || playerCount != width-1 {
			continue
		}
		if !allowed[gapIdx] {
			continue
		}

		leftOpen := w-1 >= 0 && stones[w-1] == board.Empty
		rightOpen := w+width < n && stones[w+width] == board.Empty
		if !leftOpen && !rightOpen {
			continue
		}

		var positions, extensions []board.Coordinate
		for idx := 0; idx < width; idx++ {
			if idx == gapIdx {
				continue
			}
			positions = append(positions, line[w+idx])
		}
		extensions = append(extensions, line[w+gapIdx])
		if leftOpen {
			extensions = append(extensions, line[w-1])
		}
		if rightOpen {
			extensions = append(extensions, line[w+width])
		}

		patterns = append(patterns, Pattern{Stone: player, Kind: kind, Direction: d, Positions: positions, Extensions: extensions})
		ranges = append(ranges, lineRange{w, w + width})
	}

	return patterns, ranges
}

// jumpWindowPass matches the two-gap jump-three templates X__XX / XX__X
// in a 5-wide window. Jump-three is latent: open-endedness is not part
// of its contract.
func jumpWindowPass(line []board.Coordinate, stones []board.Stone, player board.Stone, d board.Direction) []Pattern {
	var patterns []Pattern
	n := len(line)
	const width = 5

	for w := 0; w+width <= n; w++ {
		var gaps []int
		playerCount, oppCount := 0, 0
		for idx := 0; idx < width; idx++ {
			switch stones[w+idx] {
			case player:
				playerCount++
			case board.Empty:
				gaps = append(gaps, idx)
			default:
				oppCount++
			}
		}
		if oppCount > 0 || playerCount != 3 || len(gaps) != 2 {
			continue
		}
		if !((gaps[0] == 1 && gaps[1] == 2) || (gaps[0] == 2 && gaps[1] == 3)) {
			continue
		}

		var positions []board.Coordinate
		for idx := 0; idx < width; idx++ {
			if idx == gaps[0] || idx == gaps[1] {
				continue
			}
			positions = append(positions, line[w+idx])
		}
		extensions := []board.Coordinate{line[w+gaps[0]], line[w+gaps[1]]}

		patterns = append(patterns, Pattern{Stone: player, Kind: JumpThree, Direction: d, Positions: positions, Extensions: extensions})
	}

	return patterns
}
