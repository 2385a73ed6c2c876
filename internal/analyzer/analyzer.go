// Package analyzer replays a finished (or in-progress) game move by move,
// invoking the threat recognizer, evaluator, forced-sequence searchers,
// minimax driver, mistake classifier, tempo analyzer, and pattern
// detector after each ply, and assembles the results into a timeline with
// a per-player summary. Grounded on the teacher's internal/game.GameState
// replay loop (MakeMove, turn alternation, win detection via CheckWin),
// generalized from "detect a winner" to "invoke every analysis component
// after each ply and assemble a verdict."
package analyzer

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ianthereal/gomoku-analyzer/internal/board"
	"github.com/ianthereal/gomoku-analyzer/internal/eval"
	"github.com/ianthereal/gomoku-analyzer/internal/mistake"
	"github.com/ianthereal/gomoku-analyzer/internal/opening"
	"github.com/ianthereal/gomoku-analyzer/internal/pattern"
	"github.com/ianthereal/gomoku-analyzer/internal/search/depsearch"
	"github.com/ianthereal/gomoku-analyzer/internal/search/minimax"
	"github.com/ianthereal/gomoku-analyzer/internal/search/vcf"
	"github.com/ianthereal/gomoku-analyzer/internal/search/vct"
	"github.com/ianthereal/gomoku-analyzer/internal/tempo"
	"github.com/ianthereal/gomoku-analyzer/internal/threat"
)

// ErrInvalidMoveSequence is returned when a move list is malformed: a
// move lands on an occupied cell, or colors fail to strictly alternate
// starting with Black.
var ErrInvalidMoveSequence = errors.New("analyzer: invalid move sequence")

// GameType scales mistake-severity thresholds: tournament play tightens
// them, casual play loosens them, ranked is the baseline.
type GameType uint8

const (
	Ranked GameType = iota
	Tournament
	Casual
)

// Language is a pass-through label on emitted comment requests; the
// engine never interpolates strings for any of these tags itself.
type Language uint8

const (
	LangEN Language = iota
	LangVI
	LangZH
	LangJA
)

func (l Language) String() string {
	switch l {
	case LangVI:
		return "vi"
	case LangZH:
		return "zh"
	case LangJA:
		return "ja"
	default:
		return "en"
	}
}

// Classification buckets a move's strength relative to the best
// available alternative in the same position. Ordered best-to-worst so
// callers can compare with plain integer comparison.
type Classification uint8

const (
	Excellent Classification = iota
	Good
	Okay
	Weak
	Blunder
)

func (c Classification) String() string {
	switch c {
	case Excellent:
		return "excellent"
	case Good:
		return "good"
	case Okay:
		return "okay"
	case Weak:
		return "weak"
	default:
		return "blunder"
	}
}

// betterOf returns the better (lower-valued) of two classifications.
func betterOf(a, b Classification) Classification {
	if a < b {
		return a
	}
	return b
}

// Options tunes one Analyze call.
type Options struct {
	GameType      GameType
	PlayerRatings [2]int // index 0 = Black, 1 = White; 0 means unrated
	Language      Language
	MaxDepth      int           // minimax depth per ply; <=0 uses minimax.DefaultMaxDepth
	TimeBudget    time.Duration // soft per-move-search budget; 0 means unbounded
	FastMode      bool          // heuristic single-ply evaluator instead of minimax.BestMoves
	Logger        *zerolog.Logger
}

func (o Options) logger() *zerolog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return &log.Logger
}

func (o Options) maxDepth() int {
	if o.MaxDepth > 0 {
		return o.MaxDepth
	}
	return minimax.DefaultMaxDepth
}

func (o Options) severityScale() float64 {
	switch o.GameType {
	case Tournament:
		return 1.2
	case Casual:
		return 0.8
	default:
		return 1.0
	}
}

func (o Options) ratingFor(s board.Stone) int {
	switch s {
	case board.Black:
		return o.PlayerRatings[0]
	case board.White:
		return o.PlayerRatings[1]
	default:
		return 0
	}
}

// Input is a game to analyze: an ordered move list, Black first,
// strictly alternating.
type Input struct {
	Moves []board.Move
}

// maxAlternatives caps TimelineEntry.Alternatives at spec §3's "up to
// three alternative moves."
const maxAlternatives = 3

// Alternative is one candidate move not played, tagged with why it was
// considered: wins / forces / blocks / develops.
type Alternative struct {
	Move   board.Coordinate
	Reason string
}

// CommentRequest is the structured record an external comment-template
// registry would consume to render a human-facing explanation; this
// engine never interpolates the explanation text itself.
type CommentRequest struct {
	Classification   Classification
	CreatedThreats    []threat.Kind
	BlockedThreats    []threat.Kind
	IsWinning         bool
	IsForced          bool
	BetterMove        *board.Coordinate
	Language          Language
	Simplified        bool
	CulturalScenario  string
}

// TimelineEntry is the per-ply verdict: score, classification, tempo and
// role context, and up to three alternative moves.
type TimelineEntry struct {
	Ordinal              int
	Stone                board.Stone
	Coordinate           board.Coordinate
	Score                int
	WinProbability       float64
	Classification       Classification
	OpponentContextNote  string
	Role                 tempo.Role
	Tempo                tempo.Result
	Alternatives         []Alternative
	Comment              CommentRequest
}

// MistakeRecord pairs a move ordinal with its classified mistake.
type MistakeRecord struct {
	Ordinal int
	mistake.Mistake
}

// PlayerSummary is per-player aggregate statistics over a timeline.
type PlayerSummary struct {
	CountsByClassification map[Classification]int
	MistakeCount           int
	Accuracy               float64
}

// Summary is the analysis-wide rollup: per-player statistics plus up to
// three derived key insights.
type Summary struct {
	ByStone  map[board.Stone]*PlayerSummary
	Insights []string
}

// Result is the full output of one Analyze call.
type Result struct {
	Tier               string
	Timeline           []TimelineEntry
	Mistakes           []MistakeRecord
	Patterns           pattern.Result
	BestNextMove       *board.Coordinate
	Summary            Summary
	Opening            *opening.Record
	OpeningMistakes    []opening.Mistake
	ElapsedMillis      int64
	TimeBudgetExceeded bool
}

// Analyzer owns the scratch state (board, transposition table, history
// heuristic) reused across the plies of a single Analyze call. Not safe
// for concurrent Analyze calls — callers needing concurrency construct
// one Analyzer per goroutine, per spec.
type Analyzer struct {
	search *minimax.Search
}

// New constructs an Analyzer with a fresh minimax search.
func New() *Analyzer {
	return &Analyzer{search: minimax.New()}
}

// Analyze is the package-level entry point matching this engine's
// external interface. It constructs a throwaway Analyzer; a held
// Analyzer gives the same results, since Analyzer.Analyze starts every
// call with fresh search tables.
func Analyze(game Input, opts Options) (Result, error) {
	return New().Analyze(game, opts)
}

// Analyze replays game into a fresh board and produces a full analysis.
func (a *Analyzer) Analyze(game Input, opts Options) (Result, error) {
	start := time.Now()
	logger := opts.logger()
	logger.Debug().Int("moves", len(game.Moves)).Msg("analyzer: starting analysis")

	// Search tables warm up across the plies of one call only.
	a.search = minimax.New()

	b := board.New()
	if err := validateSequence(game.Moves); err != nil {
		logger.Error().Err(err).Msg("analyzer: invalid move sequence")
		return Result{}, err
	}

	var timeline []TimelineEntry
	var mistakes []MistakeRecord
	var patternEntries []pattern.MoveThreats

	previousHolder := board.Empty
	budgetExceeded := false

	for i, mv := range game.Moves {
		ordinal := i + 1
		player := mv.Stone
		opponent := player.Opponent()

		if !b.IsEmpty(mv.Coordinate) {
			return Result{}, fmt.Errorf("move %d at %s: %w", ordinal, mv.Coordinate, ErrInvalidMoveSequence)
		}

		threatsBefore := threat.Recognize(b, player)
		oppThreatsBefore := threat.Recognize(b, opponent)

		candidates, isForcedWin, exceeded := a.findCandidates(b, player, opts, maxAlternatives+1)
		if exceeded {
			budgetExceeded = true
		}
		if isForcedWin {
			logger.Debug().Int("ply", ordinal).Msg("analyzer: forced-win sequence found for best move")
		}
		var bestMove board.Coordinate
		if len(candidates) > 0 {
			bestMove = candidates[0].Move
		}
		bestEval := eval.EvaluateMove(b, bestMove, player)

		var alternatives []Alternative
		if len(candidates) > 1 {
			for _, cand := range candidates[1:] {
				if len(alternatives) >= maxAlternatives {
					break
				}
				if !cand.Move.Valid() || cand.Move == mv.Coordinate {
					continue
				}
				candEval := eval.EvaluateMove(b, cand.Move, player)
				alternatives = append(alternatives, Alternative{
					Move:   cand.Move,
					Reason: reasonTag(candEval, false, oppThreatsBefore),
				})
			}
		}

		b.PlaceStone(mv.Coordinate, player)
		actualEval := eval.Evaluate(b, player)

		classification := classify(actualEval.Score, bestEval.Score, actualEval.PlayerThreats, threatsBefore, oppThreatsBefore, ordinal)

		mctx := mistake.Context{
			Board:                      b,
			ActualMove:                 mv.Coordinate,
			BestMove:                   bestMove,
			ActualScore:                scaledActualScore(actualEval.Score, bestEval.Score, opts.severityScale()),
			BestScore:                  bestEval.Score,
			PlayerThreatsBefore:        threatsBefore,
			OpponentThreatsBefore:      oppThreatsBefore,
			PlayerThreatsAfterBest:     bestEval.PlayerThreats,
			OpponentThreatsAfterBest:   bestEval.OpponentThreats,
			PlayerThreatsAfterActual:   actualEval.PlayerThreats,
			OpponentThreatsAfterActual: actualEval.OpponentThreats,
		}
		m, isMistake := mistake.Classify(mctx)
		if isMistake {
			mistakes = append(mistakes, MistakeRecord{Ordinal: ordinal, Mistake: m})
		}

		tempoResult := tempo.Analyze(tempo.Input{
			Player:         player,
			PlayerAfter:    actualEval.PlayerThreats,
			OpponentAfter:  actualEval.OpponentThreats,
			PreviousHolder: previousHolder,
		})
		previousHolder = tempoResult.Holder

		role := tempo.ClassifyRole(actualEval.PlayerThreats.Score, actualEval.OpponentThreats.Score)

		var mistakePtr *mistake.Mistake
		if isMistake {
			mistakePtr = &m
		}
		comment := buildComment(classification, threatsBefore, oppThreatsBefore, actualEval, mistakePtr, opts, player)

		entry := TimelineEntry{
			Ordinal:             ordinal,
			Stone:               player,
			Coordinate:          mv.Coordinate,
			Score:               actualEval.Score,
			WinProbability:      actualEval.WinProbability,
			Classification:      classification,
			OpponentContextNote: opponentContextNote(oppThreatsBefore, actualEval.OpponentThreats),
			Role:                role,
			Tempo:               tempoResult,
			Alternatives:        alternatives,
			Comment:             comment,
		}
		timeline = append(timeline, entry)

		patternEntries = append(patternEntries, pattern.MoveThreats{
			Index:               ordinal,
			Player:              player,
			PlayerAfter:         actualEval.PlayerThreats,
			OpponentBefore:      oppThreatsBefore,
			OpponentAfter:       actualEval.OpponentThreats,
			BestMoveCreatesFive: bestEval.PlayerThreats.Counts[threat.Five] > 0,
		})
	}

	patterns := pattern.Detect(patternEntries)
	summary := buildSummary(timeline, mistakes, patterns)

	var openingRecord *opening.Record
	var openingMistakes []opening.Mistake
	if rec, ok := opening.Identify(game.Moves); ok {
		openingRecord = &rec
		openingMistakes = opening.CheckMistakes(rec, game.Moves)
	}

	var bestNext *board.Coordinate
	if len(game.Moves) > 0 && !gameFinished(b, game.Moves[len(game.Moves)-1]) {
		next := game.Moves[len(game.Moves)-1].Stone.Opponent()
		mv, _, exceeded := a.findBestMove(b, next, opts)
		if exceeded {
			budgetExceeded = true
		}
		if mv.Valid() {
			bestNext = &mv
		}
	}

	tier := "full"
	if opts.FastMode {
		tier = "fast"
	}

	elapsed := time.Since(start).Milliseconds()
	logger.Debug().Int("plies", len(timeline)).Int64("elapsed_ms", elapsed).Msg("analyzer: analysis complete")

	return Result{
		Tier:               tier,
		Timeline:           timeline,
		Mistakes:           mistakes,
		Patterns:           patterns,
		BestNextMove:       bestNext,
		Summary:            summary,
		Opening:            openingRecord,
		OpeningMistakes:    openingMistakes,
		ElapsedMillis:      elapsed,
		TimeBudgetExceeded: budgetExceeded,
	}, nil
}

// validateSequence enforces spec's InvalidMoveSequence shape ahead of
// replay: Black moves first and colors strictly alternate. Occupied-cell
// checks happen during replay, where the board state is authoritative.
func validateSequence(moves []board.Move) error {
	expected := board.Black
	for i, mv := range moves {
		if !mv.Coordinate.Valid() {
			return fmt.Errorf("move %d: %w: %s", i+1, board.ErrInvalidCoordinate, mv.Coordinate)
		}
		if mv.Stone != expected {
			return fmt.Errorf("move %d: expected %s to move: %w", i+1, expected, ErrInvalidMoveSequence)
		}
		expected = expected.Opponent()
	}
	return nil
}

// findBestMove is findCandidates' single-move convenience wrapper, used
// where only the top move matters (the BestNextMove computation).
func (a *Analyzer) findBestMove(b *board.Board, player board.Stone, opts Options) (board.Coordinate, bool, bool) {
	candidates, isForcedWin, exceeded := a.findCandidates(b, player, opts, 1)
	if len(candidates) == 0 {
		return board.Coordinate{}, false, exceeded
	}
	return candidates[0].Move, isForcedWin, exceeded
}

// findCandidates escalates through the forced-win searchers in increasing
// cost and reach — VCF (§4.E, four-only), VCT (§4.F, three-and-four), the
// dependency-ordered searcher (§4.G, same vocabulary as VCT but cheaper
// moves tried first) — before falling back to the configured search tier
// (minimax, or the fast heuristic in FastMode). A forced win collapses the
// result to its single winning move; otherwise it returns up to topK
// minimax candidates ranked by score from the deepest depth completed
// within opts.TimeBudget. Returns whether the result is a confirmed forced
// win and whether the soft time budget was exceeded.
func (a *Analyzer) findCandidates(b *board.Board, player board.Stone, opts Options, topK int) ([]minimax.Candidate, bool, bool) {
	if res := vcf.Search(b, player, vcf.DefaultMaxDepth); res.Found && len(res.Sequence) > 0 {
		return []minimax.Candidate{{Move: res.Sequence[0].Coordinate, Score: minimax.WinThreshold}}, true, false
	}
	if res := vct.Search(b, player, vct.DefaultMaxDepth); res.Found && len(res.Sequence) > 0 {
		return []minimax.Candidate{{Move: res.Sequence[0].Coordinate, Score: minimax.WinThreshold}}, true, false
	}
	if res := depsearch.Search(b, player, depsearch.VCT, depsearch.DefaultMaxDepth); res.Found && len(res.Sequence) > 0 {
		return []minimax.Candidate{{Move: res.Sequence[0].Coordinate, Score: minimax.WinThreshold}}, true, false
	}

	if opts.FastMode {
		return []minimax.Candidate{{Move: fastBestMove(b, player)}}, false, false
	}

	candidates, exceeded := a.search.BestMovesTopK(b, player, opts.maxDepth(), topK, opts.TimeBudget)
	return candidates, false, exceeded
}

// fastBestMove is the heuristic evaluator used in FastMode: a single-ply
// scan of candidate cells near existing stones, scored by eval alone.
func fastBestMove(b *board.Board, player board.Stone) board.Coordinate {
	candidates := neighborCandidates(b)
	if len(candidates) == 0 {
		return board.Coordinate{Row: board.Size / 2, Col: board.Size / 2}
	}
	best := candidates[0]
	bestScore := eval.EvaluateMove(b, best, player).Score
	for _, c := range candidates[1:] {
		score := eval.EvaluateMove(b, c, player).Score
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}

func neighborCandidates(b *board.Board) []board.Coordinate {
	const radius = 2
	seen := make(map[board.Coordinate]bool)
	var out []board.Coordinate
	occupied := false
	b.EachCell(func(c board.Coordinate, _ board.Stone) {
		occupied = true
		for dr := -radius; dr <= radius; dr++ {
			for dc := -radius; dc <= radius; dc++ {
				nc := board.Coordinate{Row: c.Row + dr, Col: c.Col + dc}
				if !nc.Valid() || !b.IsEmpty(nc) || seen[nc] {
					continue
				}
				seen[nc] = true
				out = append(out, nc)
			}
		}
	})
	if !occupied {
		return nil
	}
	return out
}

// scaledActualScore folds the ±20% game-type severity scale into the
// score gap mistake.Classify sees, without reaching into that package's
// unexported threshold logic: it scales the best/actual gap and returns
// an adjusted actual score that reproduces the scaled gap when
// mistake.Classify recomputes bestScore-actualScore internally.
func scaledActualScore(actualScore, bestScore int, scale float64) int {
	if scale == 1.0 {
		return actualScore
	}
	gap := bestScore - actualScore
	scaledGap := int(float64(gap) * scale)
	return bestScore - scaledGap
}

func fourTypeCount(r threat.Result) int {
	return r.Counts[threat.Five] + r.Counts[threat.OpenFour] + r.Counts[threat.Four] + r.Counts[threat.BrokenFour]
}

func classify(actualScore, bestScore int, playerThreatsAfter, threatsBefore, oppThreatsBefore threat.Result, ordinal int) Classification {
	c := bucketFromRatio(scoreRatio(actualScore, bestScore))

	if playerThreatsAfter.Counts[threat.Five] > 0 || playerThreatsAfter.Counts[threat.OpenFour] > 0 {
		c = betterOf(c, Good)
	}

	noImmediateThreats := fourTypeCount(threatsBefore) == 0 && fourTypeCount(oppThreatsBefore) == 0 &&
		threatsBefore.Counts[threat.OpenThree] == 0 && oppThreatsBefore.Counts[threat.OpenThree] == 0
	if ordinal <= 8 && noImmediateThreats {
		c = betterOf(c, Weak)
	}

	return c
}

func scoreRatio(actual, best int) float64 {
	if best <= 0 {
		if actual >= best {
			return 1
		}
		return 0
	}
	r := float64(actual) / float64(best)
	if r > 1 {
		r = 1
	}
	if r < 0 {
		r = 0
	}
	return r
}

func bucketFromRatio(r float64) Classification {
	switch {
	case r >= 0.95:
		return Excellent
	case r >= 0.80:
		return Good
	case r >= 0.60:
		return Okay
	case r >= 0.35:
		return Weak
	default:
		return Blunder
	}
}

func reasonTag(bestEval eval.Result, isForcedWin bool, oppThreatsBefore threat.Result) string {
	if isForcedWin || bestEval.PlayerThreats.Counts[threat.Five] > 0 || bestEval.PlayerThreats.Counts[threat.OpenFour] > 0 {
		return "wins"
	}
	if fourTypeCount(bestEval.PlayerThreats) > 0 {
		return "forces"
	}
	if reducesThreat(oppThreatsBefore, bestEval.OpponentThreats) {
		return "blocks"
	}
	return "develops"
}

func reducesThreat(before, after threat.Result) bool {
	return after.Counts[threat.OpenFour] < before.Counts[threat.OpenFour] ||
		after.Counts[threat.Four] < before.Counts[threat.Four] ||
		after.Counts[threat.OpenThree] < before.Counts[threat.OpenThree] ||
		len(after.DoubleThreats) < len(before.DoubleThreats)
}

func opponentContextNote(before, after threat.Result) string {
	if reducesThreat(before, after) {
		return "reduced opponent's threats"
	}
	if fourTypeCount(after) > fourTypeCount(before) {
		return "opponent gained a forcing threat"
	}
	return ""
}

// orderedKinds is every threat.Kind in its declared priority order; used
// to build CreatedThreats/BlockedThreats deterministically instead of
// ranging over a map, whose iteration order Go deliberately randomizes.
var orderedKinds = []threat.Kind{
	threat.Five, threat.OpenFour, threat.Four, threat.BrokenFour,
	threat.OpenThree, threat.Three, threat.BrokenThree, threat.JumpThree, threat.OpenTwo,
}

func buildComment(c Classification, threatsBefore, oppThreatsBefore threat.Result, actualEval eval.Result, m *mistake.Mistake, opts Options, player board.Stone) CommentRequest {
	rating := opts.ratingFor(player)
	req := CommentRequest{
		Classification: c,
		IsWinning:      actualEval.PlayerThreats.Counts[threat.Five] > 0 || actualEval.PlayerThreats.Counts[threat.OpenFour] > 0,
		IsForced:       fourTypeCount(oppThreatsBefore) > 0 || oppThreatsBefore.Counts[threat.OpenThree] > 0,
		Language:       opts.Language,
		Simplified:     rating > 0 && rating < 1200,
	}
	for _, k := range orderedKinds {
		if actualEval.PlayerThreats.Counts[k] > 0 {
			req.CreatedThreats = append(req.CreatedThreats, k)
		}
		if n := oppThreatsBefore.Counts[k]; n > 0 && actualEval.OpponentThreats.Counts[k] < n {
			req.BlockedThreats = append(req.BlockedThreats, k)
		}
	}
	if m != nil {
		better := m.BestAlternative
		req.BetterMove = &better
	}
	return req
}

func gameFinished(b *board.Board, last board.Move) bool {
	lastPlayerThreats := threat.Recognize(b, last.Stone)
	if lastPlayerThreats.Counts[threat.Five] > 0 {
		return true
	}
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			if b.IsEmpty(board.Coordinate{Row: r, Col: c}) {
				return false
			}
		}
	}
	return true
}

func buildSummary(timeline []TimelineEntry, mistakes []MistakeRecord, patterns pattern.Result) Summary {
	byStone := map[board.Stone]*PlayerSummary{
		board.Black: {CountsByClassification: make(map[Classification]int)},
		board.White: {CountsByClassification: make(map[Classification]int)},
	}
	total := map[board.Stone]int{}
	for _, e := range timeline {
		ps := byStone[e.Stone]
		ps.CountsByClassification[e.Classification]++
		total[e.Stone]++
	}

	ordinalStone := make(map[int]board.Stone, len(timeline))
	for _, e := range timeline {
		ordinalStone[e.Ordinal] = e.Stone
	}
	for _, m := range mistakes {
		if s, ok := ordinalStone[m.Ordinal]; ok {
			byStone[s].MistakeCount++
		}
	}

	for stone, ps := range byStone {
		if t := total[stone]; t > 0 {
			good := ps.CountsByClassification[Excellent] + ps.CountsByClassification[Good]
			ps.Accuracy = float64(good) / float64(t) * 100
		}
	}

	return Summary{ByStone: byStone, Insights: deriveInsights(mistakes, patterns, byStone)}
}

func deriveInsights(mistakes []MistakeRecord, patterns pattern.Result, byStone map[board.Stone]*PlayerSummary) []string {
	var insights []string

	if len(patterns.MissedWin) > 0 {
		insights = append(insights, fmt.Sprintf("missed a winning move at %d ply(s)", len(patterns.MissedWin)))
	}

	critical := 0
	for _, m := range mistakes {
		if m.Severity == mistake.Critical {
			critical++
		}
	}
	if critical > 0 {
		insights = append(insights, fmt.Sprintf("%d critical mistake(s) recorded", critical))
	}

	if len(patterns.DoubleThree) > 0 || len(patterns.FourThree) > 0 {
		insights = append(insights, fmt.Sprintf("%d double/four-three fork(s) created", len(patterns.DoubleThree)+len(patterns.FourThree)))
	}

	if len(insights) >= 3 {
		return insights[:3]
	}

	black, white := byStone[board.Black], byStone[board.White]
	if black != nil && white != nil {
		diff := black.Accuracy - white.Accuracy
		if diff >= 10 {
			insights = append(insights, "Black played more accurately overall")
		} else if diff <= -10 {
			insights = append(insights, "White played more accurately overall")
		}
	}

	if len(insights) > 3 {
		insights = insights[:3]
	}
	return insights
}
