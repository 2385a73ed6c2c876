// Package pattern scans a finished analysis timeline for game-level
// motifs that span more than one threat record: multi-directional
// threats, parallel attack lines, double-threes, four-threes, late
// blocks, and missed wins. The teacher has no equivalent game-level
// pattern pass, so this is built fresh in the idiom of package threat,
// reusing its Kind classification instead of inventing new threat
// vocabulary.
package pattern

import (
	"github.com/ianthereal/gomoku-analyzer/internal/board"
	"github.com/ianthereal/gomoku-analyzer/internal/mistake"
	"github.com/ianthereal/gomoku-analyzer/internal/threat"
)

// MoveThreats is the per-ply slice of threat information the orchestrator
// already computes while building its timeline; pattern detection is a
// read-only pass over a sequence of these, not a second walk of the board.
type MoveThreats struct {
	Index               int
	Player              board.Stone
	PlayerAfter         threat.Result // mover's own threats right after their move
	OpponentBefore      threat.Result // opponent's threats immediately before the move
	OpponentAfter       threat.Result // opponent's threats immediately after the move
	BestMoveCreatesFive bool          // the mover's best alternative this ply would have completed five
}

// Entry records one occurrence of a pattern kind: the ply index it was
// detected at, and how severe that occurrence is. Severity reuses package
// mistake's minor/major/critical scale (spec §4.J ties pattern severity to
// the same grading the mistake classifier already uses) rather than
// inventing a second scale.
type Entry struct {
	Index    int
	Severity mistake.Severity
}

// Result collects the move indices exhibiting each pattern kind.
// MultiDirectional and ParallelAttack are informational shape observations
// with no associated cost, so they stay plain indices; the four kinds that
// represent a missed or allowed tactical opportunity carry a severity.
type Result struct {
	MultiDirectional []int
	ParallelAttack   []int
	DoubleThree      []Entry
	FourThree        []Entry
	LateBlock        []Entry
	MissedWin        []Entry
}

// Detect scans entries (assumed ordered by ply) for all six pattern
// kinds spec §4.J names.
func Detect(entries []MoveThreats) Result {
	var r Result
	for _, e := range entries {
		if countDirections(e.PlayerAfter.Patterns) >= 3 {
			r.MultiDirectional = append(r.MultiDirectional, e.Index)
		}
		if hasParallelAttack(e.PlayerAfter.Patterns) {
			r.ParallelAttack = append(r.ParallelAttack, e.Index)
		}
		if e.PlayerAfter.Counts[threat.OpenThree] >= 2 {
			r.DoubleThree = append(r.DoubleThree, Entry{Index: e.Index, Severity: doubleThreeSeverity(e.PlayerAfter)})
		}
		if fourTypeCount(e.PlayerAfter) >= 1 && threeTypeCount(e.PlayerAfter) >= 1 {
			r.FourThree = append(r.FourThree, Entry{Index: e.Index, Severity: fourThreeSeverity(e.PlayerAfter)})
		}
		if e.OpponentBefore.Counts[threat.OpenFour] > 0 && e.OpponentAfter.Counts[threat.OpenFour] > 0 {
			r.LateBlock = append(r.LateBlock, Entry{Index: e.Index, Severity: lateBlockSeverity(e.OpponentAfter)})
		}
		if e.BestMoveCreatesFive && e.PlayerAfter.Counts[threat.Five] == 0 {
			r.MissedWin = append(r.MissedWin, Entry{Index: e.Index + 1, Severity: mistake.Critical})
		}
	}
	return r
}

// lateBlockSeverity grades a failure to block by how dangerous the
// opponent's threat still standing is: an unanswered open-four is major,
// a five that slipped through (shouldn't happen but graded defensively)
// is critical, anything weaker is minor.
func lateBlockSeverity(opponentAfter threat.Result) mistake.Severity {
	switch {
	case opponentAfter.Counts[threat.Five] > 0:
		return mistake.Critical
	case opponentAfter.Counts[threat.OpenFour] > 0:
		return mistake.Major
	default:
		return mistake.Minor
	}
}

// fourThreeSeverity grades a four-three fork as critical when the four-type
// half is already a five or open-four (an all-but-certain win), major
// otherwise.
func fourThreeSeverity(playerAfter threat.Result) mistake.Severity {
	if playerAfter.Counts[threat.Five] > 0 || playerAfter.Counts[threat.OpenFour] > 0 {
		return mistake.Critical
	}
	return mistake.Major
}

// doubleThreeSeverity grades a double-open-three fork as major, escalating
// to critical when three or more open threes stack up at once.
func doubleThreeSeverity(playerAfter threat.Result) mistake.Severity {
	if playerAfter.Counts[threat.OpenThree] >= 3 {
		return mistake.Critical
	}
	return mistake.Major
}

func countDirections(patterns []threat.Pattern) int {
	seen := make(map[board.Direction]bool)
	for _, p := range patterns {
		seen[p.Direction] = true
	}
	return len(seen)
}

// hasParallelAttack reports whether two or more distinct threat patterns
// share a direction — two separate lines of attack running the same way.
func hasParallelAttack(patterns []threat.Pattern) bool {
	counts := make(map[board.Direction]int)
	for _, p := range patterns {
		counts[p.Direction]++
		if counts[p.Direction] >= 2 {
			return true
		}
	}
	return false
}

func fourTypeCount(r threat.Result) int {
	return r.Counts[threat.Five] + r.Counts[threat.OpenFour] + r.Counts[threat.Four] + r.Counts[threat.BrokenFour]
}

func threeTypeCount(r threat.Result) int {
	return r.Counts[threat.OpenThree] + r.Counts[threat.Three] + r.Counts[threat.BrokenThree] + r.Counts[threat.JumpThree]
}
