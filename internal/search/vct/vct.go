// Package vct searches for a VCT (Victory by Continuous Three) sequence:
// VCF extended with open-three and three threats, for winning chains a
// pure four-sequence cannot reach. Grounded on original_source's
// ai/analysis/vct_search.py, which tries VCF first and only falls back to
// the slower three-inclusive search when VCF fails; reimplemented against
// package board's apply/undo stack and package vcf for the fast path.
package vct

import (
	"sort"

	"github.com/ianthereal/gomoku-analyzer/internal/board"
	"github.com/ianthereal/gomoku-analyzer/internal/search/vcf"
	"github.com/ianthereal/gomoku-analyzer/internal/threat"
)

// DefaultMaxDepth mirrors the Python searcher's ply budget.
const DefaultMaxDepth = 16

// MoveType classifies one move in a VCT sequence by the threat it created.
type MoveType uint8

const (
	MoveFive MoveType = iota
	MoveOpenFour
	MoveFour
	MoveOpenThree
	MoveThree
)

func (m MoveType) String() string {
	switch m {
	case MoveFive:
		return "five"
	case MoveOpenFour:
		return "open-four"
	case MoveFour:
		return "four"
	case MoveOpenThree:
		return "open-three"
	case MoveThree:
		return "three"
	default:
		return "unknown"
	}
}

// Result is the outcome of a VCT search.
type Result struct {
	Found     bool
	Sequence  []board.Move
	Depth     int
	IsVCF     bool
	MoveTypes []MoveType
}

// Search looks for a forcing three-or-four sequence for attacker on b. It
// tries the pure VCF search first (cheaper, four-only) before falling
// back to the full three-inclusive search.
func Search(b *board.Board, attacker board.Stone, maxDepth int) Result {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	defender := attacker.Opponent()

	attackerThreats := threat.Recognize(b, attacker)
	if attackerThreats.Counts[threat.Five] > 0 {
		return Result{Found: true, IsVCF: true}
	}
	if attackerThreats.Counts[threat.OpenFour] > 0 {
		if mv, ok := winningExtension(attackerThreats, threat.OpenFour); ok {
			return Result{
				Found:     true,
				Sequence:  []board.Move{{Coordinate: mv, Stone: attacker}},
				Depth:     1,
				IsVCF:     true,
				MoveTypes: []MoveType{MoveOpenFour},
			}
		}
	}

	if vcfResult := vcf.Search(b, attacker, 10); vcfResult.Found {
		return Result{Found: true, Sequence: vcfResult.Sequence, Depth: vcfResult.Depth, IsVCF: true}
	}

	s := &searcher{board: b, attacker: attacker, defender: defender, maxDepth: maxDepth}
	found := s.search(0)
	if !found {
		return Result{Found: false}
	}
	seq := make([]board.Move, len(s.sequence))
	copy(seq, s.sequence)
	types := make([]MoveType, len(s.moveTypes))
	copy(types, s.moveTypes)
	return Result{Found: true, Sequence: seq, Depth: len(seq), MoveTypes: types}
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
	board     *board.Board
	attacker  board.Stone
	defender  board.Stone
	maxDepth  int
	sequence  []board.Move
	moveTypes []MoveType
}

func toMoveType(k threat.Kind) MoveType {
	switch k {
	case threat.Five:
		return MoveFive
	case threat.OpenFour:
		return MoveOpenFour
	case threat.Four, threat.BrokenFour:
		return MoveFour
	case threat.OpenThree:
		return MoveOpenThree
	default:
		return MoveThree
	}
}

func (s *searcher) search(depth int) bool {
	if depth >= s.maxDepth {
		return false
	}

	moves := findThreatCreatingMoves(s.board, s.attacker)
	for _, mv := range moves {
		if s.tryMove(mv, depth) {
			return true
		}
	}
	return false
}

// tryMove applies mv, explores it fully, and always restores the board
// before returning — the sequence/moveTypes slices are the record of what
// was found, independent of final board state.
func (s *searcher) tryMove(mv candidate, depth int) bool {
	undoAttack := s.board.Apply(mv.at, s.attacker)
	defer undoAttack()
	s.sequence = append(s.sequence, board.Move{Coordinate: mv.at, Stone: s.attacker})
	s.moveTypes = append(s.moveTypes, toMoveType(mv.kind))

	attackerAfter := threat.Recognize(s.board, s.attacker)
	if attackerAfter.Counts[threat.Five] > 0 {
		return true
	}

	if mv.kind == threat.OpenFour {
		if winMv, ok := winningExtension(attackerAfter, threat.OpenFour); ok {
			s.sequence = append(s.sequence, board.Move{Coordinate: winMv, Stone: s.attacker})
			s.moveTypes = append(s.moveTypes, MoveFive)
		}
		return true
	}

	blocks := blockingMoves(mv.pattern, s.board)

	var won bool
	switch {
	case mv.kind == threat.Four || mv.kind == threat.BrokenFour:
		if len(blocks) == 0 {
			won = true
		} else {
			for _, block := range blocks {
				if s.tryBlock(block, depth+2) {
					won = true
					break
				}
			}
		}
	default: // three-family
		if len(blocks) == 0 {
			won = s.search(depth + 1)
		} else {
			won = s.tryBlock(blocks[0], depth+2)
		}
	}

	if won {
		return true
	}

	s.sequence = s.sequence[:len(s.sequence)-1]
	s.moveTypes = s.moveTypes[:len(s.moveTypes)-1]
	return false
}

func (s *searcher) tryBlock(block board.Coordinate, nextDepth int) bool {
	undoBlock := s.board.Apply(block, s.defender)
	defer undoBlock()
	s.sequence = append(s.sequence, board.Move{Coordinate: block, Stone: s.defender})

	if s.search(nextDepth) {
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

func findThreatCreatingMoves(b *board.Board, player board.Stone) []candidate {
	candidates := vctCandidates(b, player)
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
		case threat.Four, threat.BrokenFour:
			return 2
		case threat.OpenThree:
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
	rank := func(k threat.Kind) int {
		switch k {
		case threat.Five:
			return 0
		case threat.OpenFour:
			return 1
		case threat.Four, threat.BrokenFour:
			return 2
		case threat.OpenThree:
			return 3
		case threat.Three:
			return 4
		default:
			return 99
		}
	}
	var best threat.Pattern
	found := false
	bestRank := 99
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

func vctCandidates(b *board.Board, player board.Stone) []board.Coordinate {
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
