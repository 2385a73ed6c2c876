package opening

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ianthereal/gomoku-analyzer/internal/board"
)

func TestIdentifyMatchesKnownPrefix(t *testing.T) {
	moves := []board.Move{
		mv(7, 7, board.Black),
		mv(8, 7, board.White),
		mv(6, 7, board.Black),
		mv(5, 7, board.White),
	}
	r, ok := Identify(moves)
	assert.True(t, ok)
	assert.Equal(t, "kagetsu", r.Key)
}

func TestIdentifyRequiresThreePlies(t *testing.T) {
	moves := []board.Move{mv(7, 7, board.Black), mv(8, 7, board.White)}
	_, ok := Identify(moves)
	assert.False(t, ok)
}

func TestIdentifyReturnsFalseForUnknownSequence(t *testing.T) {
	moves := []board.Move{mv(0, 0, board.Black), mv(0, 1, board.White), mv(0, 2, board.Black)}
	_, ok := Identify(moves)
	assert.False(t, ok)
}

func TestCheckMistakesFindsRecordedWrongMove(t *testing.T) {
	r, ok := ByKey("kagetsu")
	assert.True(t, ok)

	moves := []board.Move{
		mv(7, 7, board.Black),
		mv(8, 7, board.White),
		mv(6, 7, board.Black),
		mv(5, 7, board.White),
	}
	hits := CheckMistakes(r, moves)
	assert.Len(t, hits, 1)
	assert.Equal(t, "critical", hits[0].Severity)
}

func TestCheckMistakesEmptyWhenCorrectMovePlayed(t *testing.T) {
	r, ok := ByKey("kagetsu")
	assert.True(t, ok)

	moves := []board.Move{
		mv(7, 7, board.Black),
		mv(8, 7, board.White),
		mv(6, 7, board.Black),
		mv(6, 6, board.White),
	}
	hits := CheckMistakes(r, moves)
	assert.Empty(t, hits)
}
