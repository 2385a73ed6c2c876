// Package mistake categorizes a played move against the best available
// alternative: whether it was a mistake at all, how severe, and why
// (tactical, positional, tempo, or strategic). Grounded on
// original_source's ai/analysis/mistake_analyzer.py — its severity
// thresholds and four-branch category decision procedure are carried
// verbatim (in meaning, not in its Vietnamese-label rendering, which
// belongs to a downstream comment template, not this engine).
package mistake

import (
	"github.com/ianthereal/gomoku-analyzer/internal/board"
	"github.com/ianthereal/gomoku-analyzer/internal/eval"
	"github.com/ianthereal/gomoku-analyzer/internal/threat"
)

// Category is the kind of mistake, in the priority order the classifier
// checks them.
type Category uint8

const (
	Tactical Category = iota
	Positional
	Tempo
	Strategic
)

func (c Category) String() string {
	switch c {
	case Tactical:
		return "tactical"
	case Positional:
		return "positional"
	case Tempo:
		return "tempo"
	case Strategic:
		return "strategic"
	default:
		return "unknown"
	}
}

// Severity grades how costly a mistake was.
type Severity uint8

const (
	Minor Severity = iota
	Major
	Critical
)

func (s Severity) String() string {
	switch s {
	case Minor:
		return "minor"
	case Major:
		return "major"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// positionalGapThreshold, centerDistanceGapThreshold, neighborGapThreshold
// and tempoScoreDeltaThreshold are the calibrated thresholds spec §4.I leaves to the implementer, matching
// the magnitudes the original Python analyzer uses.
const (
	positionalGapThreshold   = 5
	centerDistanceGapThreshold = 4
	neighborGapThreshold     = 2
	tempoScoreDeltaThreshold = 300
)

// Context carries everything the classifier needs about one move:
// threat pictures before the move and after both the actual and best
// alternative, plus the moves and scores themselves.
type Context struct {
	Board                     *board.Board
	ActualMove                board.Coordinate
	BestMove                  board.Coordinate
	ActualScore               int
	BestScore                 int
	PlayerThreatsBefore       threat.Result
	OpponentThreatsBefore     threat.Result
	PlayerThreatsAfterBest    threat.Result
	OpponentThreatsAfterBest  threat.Result
	PlayerThreatsAfterActual  threat.Result
	OpponentThreatsAfterActual threat.Result
}

// Mistake is a single categorized mistake record.
type Mistake struct {
	Category        Category
	Severity        Severity
	ScoreLoss       int
	BestAlternative board.Coordinate
}

// Classify returns the mistake record for ctx and true, or ok=false if
// the actual move is a winning move or a good-defense move — spec §4.I
// excludes both from being flagged regardless of score delta.
func Classify(ctx Context) (Mistake, bool) {
	if isWinningMove(ctx) || isGoodDefense(ctx) {
		return Mistake{}, false
	}

	scoreLoss := ctx.BestScore - ctx.ActualScore
	severity := determineSeverity(scoreLoss, ctx.BestScore)
	category := determineCategory(ctx)

	return Mistake{
		Category:        category,
		Severity:        severity,
		ScoreLoss:       scoreLoss,
		BestAlternative: ctx.BestMove,
	}, true
}

func isWinningMove(ctx Context) bool {
	return ctx.PlayerThreatsAfterActual.Counts[threat.Five] > 0 ||
		ctx.PlayerThreatsAfterActual.Counts[threat.OpenFour] > 0
}

// isGoodDefense reports whether the actual move blocked an opponent
// threat (open-four, four, open-three, or double threat) that existed
// before the move.
func isGoodDefense(ctx Context) bool {
	before := ctx.OpponentThreatsBefore
	after := ctx.OpponentThreatsAfterActual

	hadThreat := before.Counts[threat.OpenFour] > 0 ||
		before.Counts[threat.Four] > 0 ||
		before.Counts[threat.OpenThree] > 0 ||
		len(before.DoubleThreats) > 0
	if !hadThreat {
		return false
	}

	reduced := after.Counts[threat.OpenFour] < before.Counts[threat.OpenFour] ||
		after.Counts[threat.Four] < before.Counts[threat.Four] ||
		after.Counts[threat.OpenThree] < before.Counts[threat.OpenThree] ||
		len(after.DoubleThreats) < len(before.DoubleThreats)
	return reduced
}

// determineSeverity implements spec §4.I's relative/absolute thresholds:
// critical at >=70% loss or >=5000 absolute, major at >=30% or >=500,
// minor otherwise. When bestScore <= 0 only the absolute loss counts:
// critical at >=1000, major at >=300. Matches mistake_analyzer.py's
// _determine_severity.
func determineSeverity(scoreLoss, bestScore int) Severity {
	if bestScore <= 0 {
		switch {
		case scoreLoss >= 1000:
			return Critical
		case scoreLoss >= 300:
			return Major
		default:
			return Minor
		}
	}

	percentageLoss := float64(scoreLoss) / float64(bestScore) * 100

	if scoreLoss >= 5000 || percentageLoss >= 70 {
		return Critical
	}
	if scoreLoss >= 500 || percentageLoss >= 30 {
		return Major
	}
	return Minor
}

func determineCategory(ctx Context) Category {
	if isTacticalMistake(ctx) {
		return Tactical
	}
	if isPositionalMistake(ctx) {
		return Positional
	}
	if isTempoMistake(ctx) {
		return Tempo
	}
	return Strategic
}

func fourTypeCount(r threat.Result) int {
	return r.Counts[threat.Five] + r.Counts[threat.OpenFour] + r.Counts[threat.Four] + r.Counts[threat.BrokenFour]
}

// isTacticalMistake checks spec §4.I branch 1: the best move would have
// created a four-type threat the actual move did not, or the opponent
// had a four-type/open-three threat before the move that the actual move
// failed to reduce.
func isTacticalMistake(ctx Context) bool {
	bestCreatesFourType := fourTypeCount(ctx.PlayerThreatsAfterBest) > fourTypeCount(ctx.PlayerThreatsAfterActual)

	oppBeforeFour := fourTypeCount(ctx.OpponentThreatsBefore)
	oppBeforeOpenThree := ctx.OpponentThreatsBefore.Counts[threat.OpenThree]
	oppActualFour := fourTypeCount(ctx.OpponentThreatsAfterActual)
	oppActualOpenThree := ctx.OpponentThreatsAfterActual.Counts[threat.OpenThree]

	failedToReduce := (oppBeforeFour > 0 && oppActualFour >= oppBeforeFour) ||
		(oppBeforeOpenThree > 0 && oppActualOpenThree >= oppBeforeOpenThree)
	opponentHadThreat := oppBeforeFour > 0 || oppBeforeOpenThree > 0

	return bestCreatesFourType || (opponentHadThreat && failedToReduce)
}

// isPositionalMistake checks spec §4.I branch 2: the positional bonus
// gap, Chebyshev distance-to-center gap, or neighbor-count gap between
// actual and best exceeds the calibrated thresholds.
func isPositionalMistake(ctx Context) bool {
	actualBonus := eval.PositionalBonus(ctx.ActualMove)
	bestBonus := eval.PositionalBonus(ctx.BestMove)
	if bestBonus-actualBonus >= positionalGapThreshold {
		return true
	}

	center := board.Size / 2
	actualDist := chebyshev(ctx.ActualMove, center)
	bestDist := chebyshev(ctx.BestMove, center)
	if actualDist-bestDist >= centerDistanceGapThreshold {
		return true
	}

	actualNeighbors := countNeighbors(ctx.Board, ctx.ActualMove)
	bestNeighbors := countNeighbors(ctx.Board, ctx.BestMove)
	if bestNeighbors-actualNeighbors >= neighborGapThreshold {
		return true
	}

	return false
}

// isTempoMistake checks spec §4.I branch 3: the actual move's threat
// score delta is zero or negative, and either the best move would have
// created an open-three-or-better threat or its threat score exceeds the
// actual move's by at least tempoScoreDeltaThreshold.
func isTempoMistake(ctx Context) bool {
	bestCreatesPressure := ctx.PlayerThreatsAfterBest.Counts[threat.OpenThree] > ctx.PlayerThreatsAfterActual.Counts[threat.OpenThree] ||
		fourTypeCount(ctx.PlayerThreatsAfterBest) > fourTypeCount(ctx.PlayerThreatsAfterActual)

	threatScoreDelta := ctx.PlayerThreatsAfterActual.Score - ctx.PlayerThreatsBefore.Score
	actualIsPassive := threatScoreDelta <= 0

	bestScoreDelta := ctx.PlayerThreatsAfterBest.Score - ctx.PlayerThreatsAfterActual.Score

	return (bestCreatesPressure && actualIsPassive) ||
		(bestScoreDelta >= tempoScoreDeltaThreshold && actualIsPassive)
}

func chebyshev(c board.Coordinate, center int) int {
	dr := abs(c.Row - center)
	dc := abs(c.Col - center)
	if dr > dc {
		return dr
	}
	return dc
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func countNeighbors(b *board.Board, c board.Coordinate) int {
	count := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nc := board.Coordinate{Row: c.Row + dr, Col: c.Col + dc}
			if nc.Valid() && !b.IsEmpty(nc) {
				count++
			}
		}
	}
	return count
}
