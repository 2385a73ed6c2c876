// Package tempo tracks who holds the initiative move-to-move and each
// player's attacker/defender role in a position. Grounded on spec.md
// §4.K; like package pattern, the teacher has no equivalent, so this is
// built fresh reusing package threat's Kind classification and
// DoubleThreat bucketing (a "fork" is exactly a DoubleThreat).
package tempo

import (
	"github.com/ianthereal/gomoku-analyzer/internal/board"
	"github.com/ianthereal/gomoku-analyzer/internal/threat"
)

// roleScoreThreshold is the ±500 threat-score gap spec §4.K names for
// attacker/defender role assignment.
const roleScoreThreshold = 500

// Input is the threat picture around one move, from the mover's
// perspective, plus who held the initiative going in.
type Input struct {
	Player         board.Stone
	PlayerAfter    threat.Result
	OpponentAfter  threat.Result
	PreviousHolder board.Stone // board.Empty means no one held it
}

// Result is the tempo verdict for one move.
type Result struct {
	Forcing bool
	Holder  board.Stone // board.Empty means neutral
	Delta   int         // +1 gained initiative, -1 lost it, 0 unchanged
	Switch  bool
}

// Analyze computes the tempo verdict for in.
func Analyze(in Input) Result {
	forcing := isForcing(in.PlayerAfter)

	holder := board.Empty
	switch {
	case forcing:
		holder = in.Player
	case isForcing(in.OpponentAfter):
		holder = in.Player.Opponent()
	}

	hadInitiative := in.PreviousHolder == in.Player
	hasInitiative := holder == in.Player

	delta := 0
	switch {
	case hasInitiative && !hadInitiative:
		delta = 1
	case hadInitiative && !hasInitiative:
		delta = -1
	}

	return Result{
		Forcing: forcing,
		Holder:  holder,
		Delta:   delta,
		Switch:  holder != in.PreviousHolder && holder != board.Empty,
	}
}

// isForcing reports whether a threat picture creates a four-type threat
// or a fork — two or more significant threats sharing a completing cell.
func isForcing(r threat.Result) bool {
	return fourTypeCount(r) >= 1 || len(r.DoubleThreats) > 0
}

func fourTypeCount(r threat.Result) int {
	return r.Counts[threat.Five] + r.Counts[threat.OpenFour] + r.Counts[threat.Four] + r.Counts[threat.BrokenFour]
}

// Role classifies a player as attacker, defender, or neutral in a
// position from the two sides' threat scores.
type Role uint8

const (
	Neutral Role = iota
	Attacker
	Defender
)

func (r Role) String() string {
	switch r {
	case Attacker:
		return "attacker"
	case Defender:
		return "defender"
	default:
		return "neutral"
	}
}

// ClassifyRole compares playerScore against opponentScore using the
// ±500 threshold spec §4.K specifies.
func ClassifyRole(playerScore, opponentScore int) Role {
	diff := playerScore - opponentScore
	switch {
	case diff >= roleScoreThreshold:
		return Attacker
	case diff <= -roleScoreThreshold:
		return Defender
	default:
		return Neutral
	}
}
