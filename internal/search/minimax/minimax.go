// Package minimax drives an iterative-deepening, alpha-beta negamax
// search over package board, scored by package eval and ordered with a
// zobrist-backed transposition table, killer moves, and a history
// heuristic. Grounded on the iterative-deepening/killer-move/history
// shape of other_examples/b21fdc83_TreffnonX-taktician__ai-minimax.go.go
// and the TT-integrated alpha-beta loop of
// other_examples/12381d49_frankkopp-FrankyGo__search-alphabeta.go.go,
// adapted from Tak's multi-square slide moves and chess's from/to moves
// down to Gomoku's single-cell placements, and from both engines'
// multi-ply game trees down to a single board with incremental Zobrist
// hash maintenance instead of a move-undo log keyed by ply index.
package minimax

import (
	"errors"
	"sort"
	"time"

	"github.com/ianthereal/gomoku-analyzer/internal/board"
	"github.com/ianthereal/gomoku-analyzer/internal/eval"
	"github.com/ianthereal/gomoku-analyzer/internal/threat"
	"github.com/ianthereal/gomoku-analyzer/internal/zobrist"
)

// ErrNilBoard is returned by BestMoves when called with a nil board.
var ErrNilBoard = errors.New("minimax: nil board")

// Bounds used to recognize and rank forced wins/losses within a finite
// integer score space, mirroring taktician's MaxEval/MinEval/WinThreshold.
const (
	MaxEval      = 1 << 30
	MinEval      = -MaxEval
	WinThreshold = 1 << 29
)

// DefaultMaxDepth is used when callers pass a non-positive depth.
const DefaultMaxDepth = 6

// candidateRadius bounds move generation to cells within this Chebyshev
// distance of an existing stone; deeper in an empty board that radius
// degenerates to just the center cell.
const candidateRadius = 2

// Result is the outcome of a BestMoves call: the best move found, its
// negamax score from the root player's perspective, the principal
// variation, and search statistics.
type Result struct {
	Best  board.Coordinate
	Score int
	PV    []board.Coordinate
	Depth int
	Nodes int
}

// Search wraps a board with the tables an iterative-deepening search
// reuses across calls: the transposition table and the history heuristic
// persist between BestMoves invocations so repeated analysis of nearby
// positions in a game replay warms them up.
type Search struct {
	hasher  *zobrist.Hasher
	table   *zobrist.Table
	history map[board.Coordinate]int
}

// New constructs a Search with a fresh hasher and a table sized for
// mid-game analysis workloads.
func New() *Search {
	return &Search{
		hasher:  zobrist.New(),
		table:   zobrist.NewTable(1 << 16),
		history: make(map[board.Coordinate]int),
	}
}

// BestMoves runs iterative deepening up to maxDepth plies and returns the
// best move found for player on b.
func (s *Search) BestMoves(b *board.Board, player board.Stone, maxDepth int) Result {
	best, _ := s.deepen(b, player, maxDepth, time.Time{})
	return best
}

// BestMovesWithBudget is like BestMoves but honors a soft wall-clock
// budget, checking it between completed depths rather than mid-search.
// It returns the best result from the last depth completed before the
// budget ran out, and whether the budget was exceeded before maxDepth.
func (s *Search) BestMovesWithBudget(b *board.Board, player board.Stone, maxDepth int, budget time.Duration) (Result, bool) {
	var deadline time.Time
	if budget > 0 {
		deadline = time.Now().Add(budget)
	}
	return s.deepen(b, player, maxDepth, deadline)
}

// BestMovesTopK is like BestMovesWithBudget but returns up to topK ranked
// candidates from the deepest depth completed within budget, reusing this
// Search's warmed-up transposition table and history heuristic the way
// BestMovesWithBudget does. topK<=0 behaves like topK=1.
func (s *Search) BestMovesTopK(b *board.Board, player board.Stone, maxDepth, topK int, budget time.Duration) ([]Candidate, bool) {
	var deadline time.Time
	if budget > 0 {
		deadline = time.Now().Add(budget)
	}
	roots, depth, nodes, exceeded := s.deepenRoots(b, player, maxDepth, deadline)

	if topK <= 0 {
		topK = 1
	}
	if topK > len(roots) {
		topK = len(roots)
	}
	out := make([]Candidate, topK)
	for i := 0; i < topK; i++ {
		out[i] = Candidate{
			Move:               roots[i].Move,
			Score:              roots[i].Score,
			PV:                 roots[i].PV,
			Depth:              depth,
			Nodes:              nodes,
			TimeBudgetExceeded: exceeded,
		}
	}
	return out, exceeded
}

// deepen is the shared iterative-deepening loop; deadline is the zero
// time when no soft time budget applies. Returns whether the budget was
// exceeded before maxDepth was reached.
func (s *Search) deepen(b *board.Board, player board.Stone, maxDepth int, deadline time.Time) (Result, bool) {
	roots, depth, nodes, exceeded := s.deepenRoots(b, player, maxDepth, deadline)
	if len(roots) == 0 {
		return Result{}, exceeded
	}
	best := roots[0]
	return Result{Best: best.Move, Score: best.Score, PV: best.PV, Depth: depth, Nodes: nodes}, exceeded
}

// deepenRoots is the shared iterative-deepening loop. It returns every
// root move evaluated at the deepest completed depth, ranked best-score
// first, so callers wanting the single best move and callers wanting the
// top-k alternatives (spec's best_moves contract) share one search.
func (s *Search) deepenRoots(b *board.Board, player board.Stone, maxDepth int, deadline time.Time) ([]rootMove, int, int, bool) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	s.table.NewSearch()

	n := &node{board: b, search: s, killers: make(map[int][2]board.Coordinate)}
	boardHash := s.hasher.Hash(b, board.Empty) // side component added per-probe, not baked in here

	var roots []rootMove
	completedDepth := 0
	exceeded := false
	for depth := 1; depth <= maxDepth; depth++ {
		if !deadline.IsZero() && time.Now().After(deadline) {
			exceeded = true
			break
		}
		roots = n.root(boardHash, player, depth)
		completedDepth = depth
		if len(roots) == 0 {
			break
		}
		if best := roots[0].Score; best >= WinThreshold || best <= -WinThreshold {
			break
		}
	}
	return roots, completedDepth, n.nodes, exceeded
}

// Config tunes a standalone BestMoves call: the search depth, how many
// ranked root moves to return, and an optional soft wall-clock budget.
type Config struct {
	MaxDepth   int
	TopK       int
	TimeBudget time.Duration
}

// Candidate is one ranked move from a standalone BestMoves call.
type Candidate struct {
	Move               board.Coordinate
	Score              int
	PV                 []board.Coordinate
	Depth              int
	Nodes              int
	TimeBudgetExceeded bool
}

// BestMoves is the package-level entry point matching this engine's
// external search contract, best_moves(board, player, max_depth, top_k,
// time_budget_ms): a fresh Search per call, returning up to cfg.TopK
// ranked candidates from the deepest depth completed within cfg's time
// budget. Callers analyzing many positions in sequence should instead
// hold a *Search and call its BestMoves method, so the transposition
// table and history heuristic warm up across calls.
func BestMoves(b *board.Board, player board.Stone, cfg Config) ([]Candidate, error) {
	if b == nil {
		return nil, ErrNilBoard
	}
	s := New()
	var deadline time.Time
	if cfg.TimeBudget > 0 {
		deadline = time.Now().Add(cfg.TimeBudget)
	}
	roots, depth, nodes, exceeded := s.deepenRoots(b, player, cfg.MaxDepth, deadline)

	topK := cfg.TopK
	if topK <= 0 {
		topK = 1
	}
	if topK > len(roots) {
		topK = len(roots)
	}
	out := make([]Candidate, topK)
	for i := 0; i < topK; i++ {
		out[i] = Candidate{
			Move:               roots[i].Move,
			Score:              roots[i].Score,
			PV:                 roots[i].PV,
			Depth:              depth,
			Nodes:              nodes,
			TimeBudgetExceeded: exceeded,
		}
	}
	return out, nil
}

type node struct {
	board   *board.Board
	search  *Search
	killers map[int][2]board.Coordinate
	nodes   int
}

// rootMove is one evaluated root move: the move itself, its negamax score
// from the root player's perspective, and the principal variation that
// follows it.
type rootMove struct {
	Move  board.Coordinate
	Score int
	PV    []board.Coordinate
}

// root evaluates every candidate move at the board's root and returns all
// of them ranked best-score first, so callers can take just the best move
// or the top-k alternatives spec's best_moves contract asks for.
func (n *node) root(boardHash zobrist.Hash, player board.Stone, depth int) []rootMove {
	moves := n.orderedMoves(boardHash, player, depth, 0)
	if len(moves) == 0 {
		return []rootMove{{Score: eval.Evaluate(n.board, player).Score}}
	}

	alpha, beta := MinEval, MaxEval
	results := make([]rootMove, 0, len(moves))

	for _, mv := range moves {
		key := n.search.hasher.KeyFor(mv, player)
		childHash := zobrist.Update(boardHash, key)
		undo := n.board.Apply(mv, player)
		score, pv := n.negamax(childHash, player.Opponent(), depth-1, -beta, -alpha, 1)
		score = -score
		undo()

		results = append(results, rootMove{Move: mv, Score: score, PV: append([]board.Coordinate{mv}, pv...)})
		if score > alpha {
			alpha = score
		}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	n.search.table.Store(probeHash(boardHash, n.search.hasher, player), depth, results[0].Score, zobrist.Exact, results[0].Move)
	return results
}

// negamax returns the score from toMove's perspective and the principal
// variation following this node.
func (n *node) negamax(boardHash zobrist.Hash, toMove board.Stone, depth, alpha, beta, ply int) (int, []board.Coordinate) {
	n.nodes++

	opponentThreats := threat.Recognize(n.board, toMove.Opponent())
	if opponentThreats.Counts[threat.Five] > 0 {
		return -(MaxEval - ply), nil
	}

	if depth <= 0 {
		return eval.Evaluate(n.board, toMove).Score, nil
	}

	hash := probeHash(boardHash, n.search.hasher, toMove)
	entry, usable, found := n.search.table.Probe(hash, depth, alpha, beta)
	if usable {
		return entry.Score, nil
	}

	moves := n.orderedMovesWithTT(boardHash, toMove, depth, ply, found, entry.Best)
	if len(moves) == 0 {
		return eval.Evaluate(n.board, toMove).Score, nil
	}

	origAlpha := alpha
	bestScore := MinEval
	var bestMove board.Coordinate
	var bestPV []board.Coordinate

	for _, mv := range moves {
		key := n.search.hasher.KeyFor(mv, toMove)
		childHash := zobrist.Update(boardHash, key)
		undo := n.board.Apply(mv, toMove)
		score, pv := n.negamax(childHash, toMove.Opponent(), depth-1, -beta, -alpha, ply+1)
		score = -score
		undo()

		if score > bestScore {
			bestScore = score
			bestMove = mv
			bestPV = append([]board.Coordinate{mv}, pv...)
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			n.recordKiller(ply, mv)
			n.search.history[mv] += depth * depth
			break
		}
	}

	bound := zobrist.Exact
	switch {
	case bestScore <= origAlpha:
		bound = zobrist.UpperBound
	case bestScore >= beta:
		bound = zobrist.LowerBound
	}
	n.search.table.Store(hash, depth, bestScore, bound, bestMove)
	return bestScore, bestPV
}

func probeHash(boardHash zobrist.Hash, hasher *zobrist.Hasher, toMove board.Stone) zobrist.Hash {
	if toMove == board.White {
		return zobrist.Update(boardHash, hasher.SideKey())
	}
	return boardHash
}

func (n *node) recordKiller(ply int, mv board.Coordinate) {
	pair := n.killers[ply]
	if pair[0] == mv {
		return
	}
	pair[1] = pair[0]
	pair[0] = mv
	n.killers[ply] = pair
}

func (n *node) orderedMoves(boardHash zobrist.Hash, player board.Stone, depth, ply int) []board.Coordinate {
	return n.orderedMovesWithTT(boardHash, player, depth, ply, false, board.Coordinate{})
}

func (n *node) orderedMovesWithTT(boardHash zobrist.Hash, player board.Stone, depth, ply int, haveTTMove bool, ttMove board.Coordinate) []board.Coordinate {
	candidates := generateCandidates(n.board)
	if len(candidates) == 0 {
		return nil
	}

	killers := n.killers[ply]
	type scored struct {
		c board.Coordinate
		v int
	}
	out := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		v := n.search.history[c] + eval.PositionalBonus(c)
		if haveTTMove && c == ttMove {
			v += 1_000_000
		}
		if c == killers[0] || c == killers[1] {
			v += 500_000
		}
		out = append(out, scored{c: c, v: v})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].v > out[j].v })

	moves := make([]board.Coordinate, len(out))
	for i, s := range out {
		moves[i] = s.c
	}
	return moves
}

func generateCandidates(b *board.Board) []board.Coordinate {
	seen := make(map[board.Coordinate]bool)
	var out []board.Coordinate
	occupied := false
	b.EachCell(func(c board.Coordinate, st board.Stone) {
		occupied = true
		for dr := -candidateRadius; dr <= candidateRadius; dr++ {
			for dc := -candidateRadius; dc <= candidateRadius; dc++ {
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
		center := board.Size / 2
		return []board.Coordinate{{Row: center, Col: center}}
	}
	return out
}
