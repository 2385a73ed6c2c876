// Package vcf searches for a VCF (Victory by Continuous Four) sequence: a
// chain of four-type threats the defender is forced to answer, ending in
// five. Grounded on original_source's ai/analysis/vcf_search.py for the
// preflight checks and the recursive search shape, reimplemented against
// package board's apply/undo stack instead of list-copy board snapshots,
// and against package threat's Pattern.Extensions instead of recomputing
// a threat's open ends by hand.
package vcf

import (
	"sort"

	"github.com/ianthereal/gomoku-analyzer/internal/board"
	"github.com/ianthereal/gomoku-analyzer/internal/threat"
)

// DefaultMaxDepth mirrors the Python searcher's ply budget.
const DefaultMaxDepth = 20

// Result is the outcome of a VCF search.
type Result struct {
	Found         bool
	Sequence      []board.Move
	Depth         int
	NodesSearched int
}

// Search looks for a forcing four-sequence for attacker on b. It returns
// found=false immediately if the defender already has a five or an
// open-four of their own — attacker's VCF would be moot.
func Search(b *board.Board, attacker board.Stone, maxDepth int) Result {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	defender := attacker.Opponent()

	defenderThreats := threat.Recognize(b, defender)
	if defenderThreats.Counts[threat.Five] > 0 || defenderThreats.Counts[threat.OpenFour] > 0 {
		return Result{Found: false}
	}

	attackerThreats := threat.Recognize(b, attacker)
	if attackerThreats.Counts[threat.Five] > 0 {
		return Result{Found: true}
	}
	if attackerThreats.Counts[threat.OpenFour] > 0 {
		if mv, ok := winningExtension(attackerThreats, threat.OpenFour); ok {
			return Result{Found: true, Sequence: []board.Move{{Coordinate: mv, Stone: attacker}}, Depth: 1}
		}
	}

	s := &searcher{board: b, attacker: attacker, defender: defender, maxDepth: maxDepth}
	found := s.search(0)
	if !found {
		return Result{Found: false, NodesSearched: s.nodes}
	}
	seq := make([]board.Move, len(s.sequence))
	copy(seq, s.sequence)
	return Result{Found: true, Sequence: seq, Depth: len(seq), NodesSearched: s.nodes}
}

func winningExtension(res threat.Result, kind threat.Kind) (board.Coordinate, bool) {
	for _, p := range res.Patterns {
		if p.Kind == kind && len(p.Extensions) > 0 {
			return p.Extensions[0], true
		}
	}
	return board.Coordinate{}, false
}

type candidate struct {
	at      board.Coordinate
	kind    threat.Kind
	pattern threat.Pattern
}

type searcher struct {
	board    *board.Board
	attacker board.Stone
	defender board.Stone
	maxDepth int
	sequence []board.Move
	nodes    int
}

func (s *searcher) search(depth int) bool {
	s.nodes++
	if depth >= s.maxDepth {
		return false
	}

	moves := findFourCreatingMoves(s.board, s.attacker)
	for _, mv := range moves {
		if s.tryMove(mv, depth) {
			return true
		}
	}
	return false
}

// tryMove applies mv, explores it fully, and always restores the board
// before returning — the sequence slice (not the board) is the record of
// what was found.
func (s *searcher) tryMove(mv candidate, depth int) bool {
	undoAttack := s.board.Apply(mv.at, s.attacker)
	defer undoAttack()
	s.sequence = append(s.sequence, board.Move{Coordinate: mv.at, Stone: s.attacker})

	if mv.kind == threat.Five || mv.kind == threat.OpenFour {
		return true
	}

	blocks := blockingMoves(mv.pattern, s.board)
	if len(blocks) == 0 {
		return true
	}

	for _, block := range blocks {
		if s.tryBlock(block, depth) {
			return true
		}
	}

	s.sequence = s.sequence[:len(s.sequence)-1]
	return false
}

func (s *searcher) tryBlock(block board.Coordinate, depth int) bool {
	undoBlock := s.board.Apply(block, s.defender)
	defer undoBlock()
	s.sequence = append(s.sequence, board.Move{Coordinate: block, Stone: s.defender})

	defenderAfter := threat.Recognize(s.board, s.defender)
	if defenderAfter.Counts[threat.OpenFour] > 0 {
		s.sequence = s.sequence[:len(s.sequence)-1]
		return false
	}

	if s.search(depth + 2) {
		return true
	}

	s.sequence = s.sequence[:len(s.sequence)-1]
	return false
}

func blockingMoves(p threat.Pattern, b *board.Board) []board.Coordinate {
	out := make([]board.Coordinate, 0, len(p.Extensions))
	for _, c := range p.Extensions {
		if b.IsEmpty(c) {
			out = append(out, c)
		}
	}
	return out
}

func findFourCreatingMoves(b *board.Board, player board.Stone) []candidate {
	candidates := vcfCandidates(b, player)
	out := make([]candidate, 0, len(candidates))

	for _, c := range candidates {
		undo := b.Apply(c, player)
		res := threat.Recognize(b, player)
		best, kind, ok := strongestPatternAt(res, c)
		undo()
		if ok {
			out = append(out, candidate{at: c, kind: kind, pattern: best})
		}
	}

	priority := func(k threat.Kind) int {
		switch k {
		case threat.Five:
			return 0
		case threat.OpenFour:
			return 1
		case threat.Four:
			return 2
		case threat.BrokenFour:
			return 3
		default:
			return 4
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return priority(out[i].kind) < priority(out[j].kind)
	})
	return out
}

func strongestPatternAt(res threat.Result, at board.Coordinate) (threat.Pattern, threat.Kind, bool) {
	var best threat.Pattern
	found := false
	bestRank := 99
	rank := func(k threat.Kind) int {
		switch k {
		case threat.Five:
			return 0
		case threat.OpenFour:
			return 1
		case threat.Four, threat.BrokenFour:
			return 2
		default:
			return 99
		}
	}
	for _, p := range res.Patterns {
		if rank(p.Kind) >= 99 {
			continue
		}
		if !containsCoordinate(p.Positions, at) {
			continue
		}
		if r := rank(p.Kind); r < bestRank {
			bestRank = r
			best = p
			found = true
		}
	}
	if !found {
		return threat.Pattern{}, threat.Five, false
	}
	return best, best.Kind, true
}

func containsCoordinate(positions []board.Coordinate, at board.Coordinate) bool {
	for _, p := range positions {
		if p == at {
			return true
		}
	}
	return false
}

func vcfCandidates(b *board.Board, player board.Stone) []board.Coordinate {
	seen := make(map[board.Coordinate]bool)
	var out []board.Coordinate
	b.EachCell(func(c board.Coordinate, s board.Stone) {
		if s != player {
			return
		}
		for dr := -2; dr <= 2; dr++ {
			for dc := -2; dc <= 2; dc++ {
				nc := board.Coordinate{Row: c.Row + dr, Col: c.Col + dc}
				if !nc.Valid() || !b.IsEmpty(nc) || seen[nc] {
					continue
				}
				seen[nc] = true
				out = append(out, nc)
			}
		}
	})
	return out
}
