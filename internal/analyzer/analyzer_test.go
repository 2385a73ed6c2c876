package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianthereal/gomoku-analyzer/internal/board"
)

func coord(t *testing.T, notation string) board.Coordinate {
	t.Helper()
	c, err := board.ParseCoordinate(notation)
	require.NoError(t, err)
	return c
}

func move(t *testing.T, notation string, s board.Stone) board.Move {
	t.Helper()
	return board.Move{Coordinate: coord(t, notation), Stone: s}
}

func TestAnalyzeRejectsWhiteMovingFirst(t *testing.T) {
	_, err := Analyze(Input{Moves: []board.Move{move(t, "H8", board.White)}}, Options{})
	assert.ErrorIs(t, err, ErrInvalidMoveSequence)
}

func TestAnalyzeRejectsOccupiedCell(t *testing.T) {
	moves := []board.Move{
		move(t, "H8", board.Black),
		move(t, "H8", board.White),
	}
	_, err := Analyze(Input{Moves: moves}, Options{FastMode: true})
	assert.ErrorIs(t, err, ErrInvalidMoveSequence)
}

func TestAnalyzeRejectsBrokenAlternation(t *testing.T) {
	moves := []board.Move{
		move(t, "H8", board.Black),
		move(t, "H9", board.Black),
	}
	_, err := Analyze(Input{Moves: moves}, Options{FastMode: true})
	assert.ErrorIs(t, err, ErrInvalidMoveSequence)
}

// Grounds spec's "a move that creates a five is never classified worse
// than good" testable property and the "immediate win detection"
// end-to-end scenario's reason tag.
func TestAnalyzeCompletingFiveIsNeverWorseThanGood(t *testing.T) {
	moves := []board.Move{
		move(t, "H8", board.Black),
		move(t, "A1", board.White),
		move(t, "H9", board.Black),
		move(t, "A2", board.White),
		move(t, "H10", board.Black),
		move(t, "A3", board.White),
		move(t, "H11", board.Black),
		move(t, "A4", board.White),
		move(t, "H12", board.Black),
	}
	result, err := Analyze(Input{Moves: moves}, Options{FastMode: true})
	require.NoError(t, err)

	last := result.Timeline[len(result.Timeline)-1]
	assert.LessOrEqual(t, last.Classification, Good)
	assert.True(t, last.Comment.IsWinning)

	for _, m := range result.Mistakes {
		assert.NotEqual(t, last.Ordinal, m.Ordinal)
	}
}

// Grounds the "immediate win detection" scenario: with an open four
// already on the board, the best next move must complete five.
func TestAnalyzeBestNextMoveCompletesOpenFour(t *testing.T) {
	moves := []board.Move{
		move(t, "H8", board.Black),
		move(t, "A1", board.White),
		move(t, "H9", board.Black),
		move(t, "A2", board.White),
		move(t, "H10", board.Black),
		move(t, "A3", board.White),
		move(t, "H11", board.Black),
		move(t, "A4", board.White),
	}
	result, err := Analyze(Input{Moves: moves}, Options{FastMode: true})
	require.NoError(t, err)

	require.NotNil(t, result.BestNextMove)
	h7, h12 := coord(t, "H7"), coord(t, "H12")
	assert.True(t, *result.BestNextMove == h7 || *result.BestNextMove == h12)
}

// Grounds the "deterministic replay" scenario: identical inputs produce
// byte-identical results except for elapsed-time bookkeeping.
func TestAnalyzeDeterministicReplay(t *testing.T) {
	moves := []board.Move{
		move(t, "H8", board.Black),
		move(t, "A1", board.White),
		move(t, "H9", board.Black),
		move(t, "A2", board.White),
		move(t, "H10", board.Black),
	}
	opts := Options{FastMode: true}

	first, err := Analyze(Input{Moves: moves}, opts)
	require.NoError(t, err)
	second, err := Analyze(Input{Moves: moves}, opts)
	require.NoError(t, err)

	first.ElapsedMillis = 0
	second.ElapsedMillis = 0
	assert.Equal(t, first, second)
}

func TestAnalyzeIdentifiesKnownOpening(t *testing.T) {
	moves := []board.Move{
		{Coordinate: board.Coordinate{Row: 7, Col: 7}, Stone: board.Black},
		{Coordinate: board.Coordinate{Row: 8, Col: 7}, Stone: board.White},
		{Coordinate: board.Coordinate{Row: 6, Col: 7}, Stone: board.Black},
		{Coordinate: board.Coordinate{Row: 5, Col: 7}, Stone: board.White},
	}
	result, err := Analyze(Input{Moves: moves}, Options{FastMode: true})
	require.NoError(t, err)

	require.NotNil(t, result.Opening)
	assert.Equal(t, "kagetsu", result.Opening.Key)
}

func TestAnalyzeSummaryCountsEveryPly(t *testing.T) {
	moves := []board.Move{
		move(t, "H8", board.Black),
		move(t, "A1", board.White),
		move(t, "H9", board.Black),
	}
	result, err := Analyze(Input{Moves: moves}, Options{FastMode: true})
	require.NoError(t, err)

	black := result.Summary.ByStone[board.Black]
	white := result.Summary.ByStone[board.White]
	require.NotNil(t, black)
	require.NotNil(t, white)

	total := 0
	for _, n := range black.CountsByClassification {
		total += n
	}
	assert.Equal(t, 2, total)

	total = 0
	for _, n := range white.CountsByClassification {
		total += n
	}
	assert.Equal(t, 1, total)
}

// Grounds spec §3's "up to three alternative moves": every entry's
// Alternatives list stays within the cap and never repeats the move
// actually played, across both search tiers.
func TestAnalyzeAlternativesCapAndNeverRepeatPlayedMove(t *testing.T) {
	moves := []board.Move{
		move(t, "H8", board.Black),
		move(t, "J9", board.White),
		move(t, "I9", board.Black),
	}
	for _, opts := range []Options{{FastMode: true}, {FastMode: false, MaxDepth: 2}} {
		result, err := Analyze(Input{Moves: moves}, opts)
		require.NoError(t, err)
		for _, entry := range result.Timeline {
			assert.LessOrEqual(t, len(entry.Alternatives), maxAlternatives)
			for _, alt := range entry.Alternatives {
				assert.NotEqual(t, entry.Coordinate, alt.Move)
			}
		}
	}
}

func TestAnalyzeEmptyMoveListProducesEmptyResult(t *testing.T) {
	result, err := Analyze(Input{}, Options{FastMode: true})
	require.NoError(t, err)
	assert.Empty(t, result.Timeline)
	assert.Nil(t, result.BestNextMove)
}
