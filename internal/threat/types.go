// Package threat scans a board for the line patterns that matter in
// Gomoku/Caro — five, open-four, four, broken-four, open-three, three,
// broken-three, jump-three, open-two — and the double threats formed when
// two of them share a completing cell.
package threat

import "github.com/ianthereal/gomoku-analyzer/internal/board"

// Kind enumerates threat pattern classifications in the strict priority
// order of spec §3 (five subsumes everything below it).
type Kind uint8

const (
	Five Kind = iota
	OpenFour
	Four
	BrokenFour
	OpenThree
	Three
	BrokenThree
	JumpThree
	OpenTwo
)

func (k Kind) String() string {
	switch k {
	case Five:
		return "five"
	case OpenFour:
		return "open-four"
	case Four:
		return "four"
	case BrokenFour:
		return "broken-four"
	case OpenThree:
		return "open-three"
	case Three:
		return "three"
	case BrokenThree:
		return "broken-three"
	case JumpThree:
		return "jump-three"
	case OpenTwo:
		return "open-two"
	default:
		return "unknown"
	}
}

// Weights gives each pattern kind a fixed integer contribution to a
// position's score. Values are stable across versions (spec §3): five is
// terminal, open-four is a guaranteed win, four and double-three sit near
// each other, and the rest decay from there.
var Weights = [...]int{
	Five:        100000,
	OpenFour:    15000,
	Four:        5000,
	BrokenFour:  4500,
	OpenThree:   1200,
	Three:       400,
	BrokenThree: 350,
	JumpThree:   250,
	OpenTwo:     80,
}

// IsFourType reports whether k forces the opponent to respond (four-family
// patterns that threaten five next ply).
func (k Kind) IsFourType() bool {
	return k == Five || k == OpenFour || k == Four || k == BrokenFour
}

// IsThreeType reports whether k is a developing three-family pattern.
func (k Kind) IsThreeType() bool {
	return k == OpenThree || k == Three || k == BrokenThree || k == JumpThree
}

// DoubleKind enumerates the three named double-threat shapes, ordered by
// severity (DoubleFour > FourThree > DoubleThree).
type DoubleKind uint8

const (
	DoubleFour DoubleKind = iota
	FourThree
	DoubleThree
)

func (k DoubleKind) String() string {
	switch k {
	case DoubleFour:
		return "double-four"
	case FourThree:
		return "four-three"
	case DoubleThree:
		return "double-three"
	default:
		return "unknown"
	}
}

// DoubleWeights mirrors Weights for the double-threat records.
var DoubleWeights = [...]int{
	DoubleFour:  20000,
	FourThree:   6000,
	DoubleThree: 5500,
}

// Pattern is a single threat: a stone color, a direction, the occupied
// cells that make it up, and the empty cells that would extend or
// complete it.
type Pattern struct {
	Stone      board.Stone
	Kind       Kind
	Direction  board.Direction
	Positions  []board.Coordinate
	Extensions []board.Coordinate
}

// DoubleThreat is two single threats in different directions that share a
// cell (the key position) that each of them occupies or extends to.
type DoubleThreat struct {
	Kind     DoubleKind
	Key      board.Coordinate
	Primary  Pattern
	Ancillary Pattern
}

// Result is the full threat picture for one player on one board: counts by
// kind, the individual pattern records, double-threat counts and records,
// and the aggregate score.
type Result struct {
	Player        board.Stone
	Counts        map[Kind]int
	Patterns      []Pattern
	DoubleCounts  map[DoubleKind]int
	DoubleThreats []DoubleThreat
	Score         int
}

func newResult(player board.Stone) *Result {
	return &Result{
		Player:       player,
		Counts:       make(map[Kind]int),
		DoubleCounts: make(map[DoubleKind]int),
	}
}

func positionKey(positions []board.Coordinate) [225]bool {
	var key [225]bool
	for _, p := range positions {
		key[p.Row*board.Size+p.Col] = true
	}
	return key
}

func overlaps(a, b []board.Coordinate) bool {
	set := make(map[board.Coordinate]bool, len(a))
	for _, p := range a {
		set[p] = true
	}
	for _, p := range b {
		if set[p] {
			return true
		}
	}
	return false
}
