// Package depsearch implements a dependency-ordered forcing-sequence
// search: the same four/three forcing chains VCF and VCT look for, but
// with candidate moves ranked by how many empty cells a threat still
// depends on to stay alive — fewer dependencies means a more committed,
// harder-to-escape threat, so it is tried first. Grounded on
// original_source's ai/analysis/dbs_search.py ("Yixin-style" dependency
// graph search). The Python original builds its dependency graph once
// per search root and keeps consulting it by threat index as the board
// changes underneath it, which goes stale a few plies in; this
// reimplementation recomputes each node's dependencies fresh (from
// package threat's live Pattern.Extensions) so the ordering heuristic
// stays meaningful at every depth instead of only at the root.
package depsearch

import (
	"sort"

	"github.com/ianthereal/gomoku-analyzer/internal/board"
	"github.com/ianthereal/gomoku-analyzer/internal/threat"
)

// Mode selects which threat kinds count as forcing for this search.
type Mode uint8

const (
	// VCF only treats four-type patterns as forcing.
	VCF Mode = iota
	// VCT additionally treats three-type patterns as forcing; at each
	// node they are tried after every four-type move.
	VCT
)

// DefaultMaxDepth mirrors the Python searcher's ply budget.
const DefaultMaxDepth = 50

// Result is the outcome of a dependency-ordered search.
type Result struct {
	Found               bool
	Sequence            []board.Move
	Depth               int
	NodesSearched        int
	PrunedByDependency   int
	WinningType          string // "vcf" or "vct"
}

// Search looks for a forcing sequence for player on b using mode's threat
// vocabulary, trying moves with fewer live dependencies first.
func Search(b *board.Board, player board.Stone, mode Mode, maxDepth int) Result {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	defender := player.Opponent()

	current := threat.Recognize(b, player)
	if current.Counts[threat.Five] > 0 {
		return Result{Found: true, NodesSearched: 1, WinningType: "vcf"}
	}
	if current.Counts[threat.OpenFour] > 0 {
		if mv, ok := firstExtension(current, threat.OpenFour); ok {
			return Result{
				Found:         true,
				Sequence:      []board.Move{{Coordinate: mv, Stone: player}},
				Depth:         1,
				NodesSearched: 1,
				WinningType:   "vcf",
			}
		}
	}

	s := &searcher{board: b, attacker: player, defender: defender, mode: mode, maxDepth: maxDepth}
	found := s.search(0)

	winningType := ""
	if found {
		winningType = "vcf"
		if mode == VCT {
			winningType = "vct"
		}
	}
	seq := make([]board.Move, len(s.sequence))
	copy(seq, s.sequence)
	return Result{
		Found:              found,
		Sequence:           seq,
		Depth:              len(seq),
		NodesSearched:       s.nodes,
		PrunedByDependency: s.pruned,
		WinningType:         winningType,
	}
}

func firstExtension(res threat.Result, kind threat.Kind) (board.Coordinate, bool) {
	for _, p := range res.Patterns {
		if p.Kind == kind && len(p.Extensions) > 0 {
			return p.Extensions[0], true
		}
	}
	return board.Coordinate{}, false
}

func isForcing(mode Mode, k threat.Kind) bool {
	if k.IsFourType() {
		return true
	}
	return mode == VCT && k.IsThreeType()
}

type ranked struct {
	pattern threat.Pattern
	move    board.Coordinate
	deps    int
}

// rankedThreats returns the player's current forcing patterns, each paired
// with one still-empty completion cell, sorted by threat-kind priority and
// then by ascending dependency count (fewer live extensions first).
func rankedThreats(res threat.Result, mode Mode) []ranked {
	var out []ranked
	for _, p := range res.Patterns {
		if !isForcing(mode, p.Kind) {
			continue
		}
		for _, ext := range p.Extensions {
			out = append(out, ranked{pattern: p, move: ext, deps: len(p.Extensions)})
			break // one completion cell is enough to represent this pattern
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
		case threat.Three, threat.BrokenThree:
			return 4
		default:
			return 5
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := priority(out[i].pattern.Kind), priority(out[j].pattern.Kind)
		if pi != pj {
			return pi < pj
		}
		return out[i].deps < out[j].deps
	})
	return out
}

type searcher struct {
	board    *board.Board
	attacker board.Stone
	defender board.Stone
	mode     Mode
	maxDepth int
	sequence []board.Move
	nodes    int
	pruned   int
}

func (s *searcher) search(depth int) bool {
	s.nodes++
	if depth >= s.maxDepth {
		return false
	}

	current := threat.Recognize(s.board, s.attacker)
	for _, r := range rankedThreats(current, s.mode) {
		if !s.board.IsEmpty(r.move) {
			s.pruned++
			continue
		}
		if s.tryMove(r, depth) {
			return true
		}
	}
	return false
}

func (s *searcher) tryMove(r ranked, depth int) bool {
	undoAttack := s.board.Apply(r.move, s.attacker)
	defer undoAttack()
	s.sequence = append(s.sequence, board.Move{Coordinate: r.move, Stone: s.attacker})

	attackerAfter := threat.Recognize(s.board, s.attacker)
	if attackerAfter.Counts[threat.Five] > 0 {
		return true
	}
	if attackerAfter.Counts[threat.OpenFour] > 0 {
		if winMv, ok := firstExtension(attackerAfter, threat.OpenFour); ok {
			s.sequence = append(s.sequence, board.Move{Coordinate: winMv, Stone: s.attacker})
		}
		return true
	}

	responses := forcedResponses(attackerAfter, s.mode)
	if len(responses) == 0 {
		return true
	}

	for _, resp := range responses {
		if s.tryBlock(resp, depth) {
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

	if s.search(depth + 2) {
		return true
	}

	s.sequence = s.sequence[:len(s.sequence)-1]
	return false
}

// forcedResponses collects blocking cells for the defender: fours must be
// answered first; if none exist and the search is in VCT mode, threes are
// answered instead.
func forcedResponses(res threat.Result, mode Mode) []board.Coordinate {
	var fours []board.Coordinate
	seen := make(map[board.Coordinate]bool)
	for _, p := range res.Patterns {
		if !p.Kind.IsFourType() {
			continue
		}
		for _, ext := range p.Extensions {
			if !seen[ext] {
				seen[ext] = true
				fours = append(fours, ext)
			}
		}
	}
	if len(fours) > 0 || mode == VCF {
		return fours
	}

	var threes []board.Coordinate
	for _, p := range res.Patterns {
		if !p.Kind.IsThreeType() {
			continue
		}
		for _, ext := range p.Extensions {
			if !seen[ext] {
				seen[ext] = true
				threes = append(threes, ext)
			}
		}
	}
	return threes
}
