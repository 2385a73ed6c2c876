package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ianthereal/gomoku-analyzer/internal/board"
	"github.com/ianthereal/gomoku-analyzer/internal/mistake"
	"github.com/ianthereal/gomoku-analyzer/internal/threat"
)

func TestDetectDoubleThree(t *testing.T) {
	entries := []MoveThreats{
		{
			Index: 3,
			PlayerAfter: threat.Result{
				Counts: map[threat.Kind]int{threat.OpenThree: 2},
			},
		},
	}
	r := Detect(entries)
	assert.Equal(t, []Entry{{Index: 3, Severity: mistake.Major}}, r.DoubleThree)
}

func TestDetectFourThree(t *testing.T) {
	entries := []MoveThreats{
		{
			Index: 5,
			PlayerAfter: threat.Result{
				Counts: map[threat.Kind]int{threat.Four: 1, threat.Three: 1},
			},
		},
	}
	r := Detect(entries)
	assert.Equal(t, []Entry{{Index: 5, Severity: mistake.Major}}, r.FourThree)
}

// TestDetectLateBlock is the literal scenario from spec §4.J: an unanswered
// open-four must surface as a late-block with severity "major".
func TestDetectLateBlock(t *testing.T) {
	entries := []MoveThreats{
		{
			Index:          2,
			OpponentBefore: threat.Result{Counts: map[threat.Kind]int{threat.OpenFour: 1}},
			OpponentAfter:  threat.Result{Counts: map[threat.Kind]int{threat.OpenFour: 1}},
		},
	}
	r := Detect(entries)
	assert.Equal(t, []Entry{{Index: 2, Severity: mistake.Major}}, r.LateBlock)
}

func TestDetectMissedWin(t *testing.T) {
	entries := []MoveThreats{
		{
			Index:               7,
			BestMoveCreatesFive: true,
			PlayerAfter:         threat.Result{Counts: map[threat.Kind]int{}},
		},
	}
	r := Detect(entries)
	assert.Equal(t, []Entry{{Index: 8, Severity: mistake.Critical}}, r.MissedWin)
}

func TestDetectMultiDirectional(t *testing.T) {
	entries := []MoveThreats{
		{
			Index: 1,
			PlayerAfter: threat.Result{
				Patterns: []threat.Pattern{
					{Direction: board.Horizontal},
					{Direction: board.Vertical},
					{Direction: board.DiagonalDown},
				},
			},
		},
	}
	r := Detect(entries)
	assert.Equal(t, []int{1}, r.MultiDirectional)
}
