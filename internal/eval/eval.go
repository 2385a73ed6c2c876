// Package eval scores a position for a player from threat recognition
// plus positional bonuses, and estimates a win probability from that score.
package eval

import (
	"math"

	"github.com/ianthereal/gomoku-analyzer/internal/board"
	"github.com/ianthereal/gomoku-analyzer/internal/threat"
)

// Alpha is the opponent-threat discount in Score = mine - Alpha*theirs + positional.
const Alpha = 0.9

// positionalBonus is precomputed once at package init: it peaks at the
// board center and decays with Chebyshev distance, grounded on the
// teacher's domain cousin aidenwang9867-simple-gomoku's per-call
// center-distance scoring, here baked into a table instead of recomputed.
var positionalBonus [board.Size][board.Size]int

func init() {
	center := board.Size / 2
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			dr := abs(r - center)
			dc := abs(c - center)
			dist := dr
			if dc > dist {
				dist = dc
			}
			positionalBonus[r][c] = (center + 1 - dist) * 4
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// PositionalBonus returns the precomputed center-peaking bonus for c.
func PositionalBonus(c board.Coordinate) int {
	if !c.Valid() {
		return 0
	}
	return positionalBonus[c.Row][c.Col]
}

// Result is a full position evaluation for one player.
type Result struct {
	Player         board.Stone
	Score          int
	PlayerThreats  threat.Result
	OpponentThreats threat.Result
	WinProbability float64
}

// Evaluate scores b for player: the player's threat score minus Alpha
// times the opponent's threat score, plus a positional bonus summed over
// the player's own stones.
func Evaluate(b *board.Board, player board.Stone) Result {
	opponent := player.Opponent()

	playerThreats := threat.Recognize(b, player)
	opponentThreats := threat.Recognize(b, opponent)

	score := playerThreats.Score - int(Alpha*float64(opponentThreats.Score))

	b.EachCell(func(c board.Coordinate, s board.Stone) {
		if s == player {
			score += PositionalBonus(c)
		}
	})

	return Result{
		Player:          player,
		Score:           score,
		PlayerThreats:   playerThreats,
		OpponentThreats: opponentThreats,
		WinProbability:  WinProbability(score),
	}
}

// EvaluateMove applies stone at c for player, evaluates, and reverts —
// never mutating b on exit.
func EvaluateMove(b *board.Board, c board.Coordinate, player board.Stone) Result {
	undo := b.Apply(c, player)
	defer undo()
	return Evaluate(b, player)
}

// WinProbability maps an integer score to a monotone, bounded estimate in
// [0.05, 0.95] via a logistic curve. The exact coefficients are an
// implementation choice (spec leaves them open); only the clamp and
// monotonicity are required.
func WinProbability(score int) float64 {
	p := 0.5 + 0.45*math.Tanh(float64(score)/2000.0)
	if p < 0.05 {
		return 0.05
	}
	if p > 0.95 {
		return 0.95
	}
	return p
}
