package tempo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ianthereal/gomoku-analyzer/internal/board"
	"github.com/ianthereal/gomoku-analyzer/internal/threat"
)

func TestAnalyzeGainsInitiativeOnFour(t *testing.T) {
	in := Input{
		Player:         board.Black,
		PlayerAfter:    threat.Result{Counts: map[threat.Kind]int{threat.Four: 1}},
		OpponentAfter:  threat.Result{Counts: map[threat.Kind]int{}},
		PreviousHolder: board.Empty,
	}
	r := Analyze(in)
	assert.True(t, r.Forcing)
	assert.Equal(t, board.Black, r.Holder)
	assert.Equal(t, 1, r.Delta)
	assert.True(t, r.Switch)
}

func TestAnalyzeLosesInitiativeWhenOpponentStillForcing(t *testing.T) {
	in := Input{
		Player:         board.Black,
		PlayerAfter:    threat.Result{Counts: map[threat.Kind]int{}},
		OpponentAfter:  threat.Result{Counts: map[threat.Kind]int{threat.Four: 1}},
		PreviousHolder: board.Black,
	}
	r := Analyze(in)
	assert.False(t, r.Forcing)
	assert.Equal(t, board.White, r.Holder)
	assert.Equal(t, -1, r.Delta)
	assert.True(t, r.Switch)
}

func TestAnalyzeForkCountsAsForcing(t *testing.T) {
	in := Input{
		Player: board.White,
		PlayerAfter: threat.Result{
			Counts:        map[threat.Kind]int{threat.OpenThree: 2},
			DoubleThreats: []threat.DoubleThreat{{Kind: threat.DoubleThree}},
		},
		OpponentAfter:  threat.Result{Counts: map[threat.Kind]int{}},
		PreviousHolder: board.Empty,
	}
	r := Analyze(in)
	assert.True(t, r.Forcing)
	assert.Equal(t, board.White, r.Holder)
}

func TestAnalyzeNoChangeWhenNeitherForces(t *testing.T) {
	in := Input{
		Player:         board.Black,
		PlayerAfter:    threat.Result{Counts: map[threat.Kind]int{}},
		OpponentAfter:  threat.Result{Counts: map[threat.Kind]int{}},
		PreviousHolder: board.Empty,
	}
	r := Analyze(in)
	assert.False(t, r.Forcing)
	assert.Equal(t, board.Empty, r.Holder)
	assert.Equal(t, 0, r.Delta)
	assert.False(t, r.Switch)
}

func TestClassifyRoleThresholds(t *testing.T) {
	assert.Equal(t, Attacker, ClassifyRole(1200, 500))
	assert.Equal(t, Defender, ClassifyRole(200, 900))
	assert.Equal(t, Neutral, ClassifyRole(500, 400))
}
