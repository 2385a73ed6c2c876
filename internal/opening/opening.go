// Package opening identifies known named openings from a game's first
// few moves and surfaces common mistakes recorded against them. The
// teacher has no opening theory of its own; this package is grounded on
// original_source/ai/analysis/opening_book.py, whose 26 Renju openings
// plus Gomoku direct/indirect openings were dropped from the distilled
// spec and are restored here as a compiled-in static table.
package opening

import "github.com/ianthereal/gomoku-analyzer/internal/board"

// Style classifies how an opening develops relative to the first stone.
type Style uint8

const (
	RenjuDirect Style = iota
	RenjuIndirect
	GomokuDirect
	GomokuIndirect
)

func (s Style) String() string {
	switch s {
	case RenjuDirect:
		return "renju_direct"
	case RenjuIndirect:
		return "renju_indirect"
	case GomokuDirect:
		return "gomoku_direct"
	case GomokuIndirect:
		return "gomoku_indirect"
	default:
		return "unknown"
	}
}

// Evaluation is the opening book's qualitative verdict on an opening.
type Evaluation uint8

const (
	Balanced Evaluation = iota
	Advantage
	Winning
	Disadvantage
	Losing
)

func (e Evaluation) String() string {
	switch e {
	case Advantage:
		return "advantage"
	case Winning:
		return "winning"
	case Disadvantage:
		return "disadvantage"
	case Losing:
		return "losing"
	default:
		return "balanced"
	}
}

// Mistake is a known wrong move recorded against an opening at a
// specific move number, with the correct alternative.
type Mistake struct {
	MoveNumber  int
	WrongMove   board.Coordinate
	CorrectMove board.Coordinate
	Explanation string
	Severity    string // "minor", "major", "critical"
}

// Record is one named opening: its defining move prefix plus metadata.
type Record struct {
	Key            string
	Name           string
	NameEN         string
	NameJP         string
	Style          Style
	Moves          []board.Move
	Evaluation     Evaluation
	EvaluationScore int // -100..+100, positive favors Black
	Description    string
	KeyIdeas       []string
	CommonMistakes []Mistake
	RecommendedFor string // "beginner", "intermediate", "advanced"
}

func mv(row, col int, s board.Stone) board.Move {
	return board.Move{Coordinate: board.Coordinate{Row: row, Col: col}, Stone: s}
}

// Index is the compiled-in opening book, a read-only value safe for
// concurrent lookups. Keyed by opening name for direct access via
// ByKey; Identify does a linear scan since the table is small and
// scanned once per analysis, not per ply.
var Index = []Record{
	{
		Key: "kansei", Name: "Hàn Tinh", NameEN: "Cold Star", NameJP: "Kansei (寒星)",
		Style: RenjuDirect,
		Moves: []board.Move{mv(7, 7, board.Black), mv(8, 7, board.White), mv(6, 6, board.Black)},
		Evaluation: Balanced, EvaluationScore: 5,
		Description:    "A balanced direct opening; Black has several directions to develop.",
		KeyIdeas:       []string{"Black develops along the diagonal", "White must block early"},
		RecommendedFor: "beginner",
	},
	{
		Key: "kagetsu", Name: "Hoa Nguyệt", NameEN: "Flower Moon", NameJP: "Kagetsu (花月)",
		Style: RenjuDirect,
		Moves: []board.Move{mv(7, 7, board.Black), mv(8, 7, board.White), mv(6, 7, board.Black)},
		Evaluation: Advantage, EvaluationScore: 15,
		Description: "A strong direct opening for Black with several attacking continuations.",
		KeyIdeas:    []string{"Black builds a vertical line", "Several VCF tries for Black"},
		CommonMistakes: []Mistake{
			{MoveNumber: 4, WrongMove: board.Coordinate{Row: 5, Col: 7}, CorrectMove: board.Coordinate{Row: 6, Col: 6},
				Explanation: "White should block diagonally rather than extend the vertical line", Severity: "critical"},
		},
		RecommendedFor: "intermediate",
	},
	{
		Key: "suigetsu", Name: "Thủy Nguyệt", NameEN: "Water Moon", NameJP: "Suigetsu (水月)",
		Style: RenjuDirect,
		Moves: []board.Move{mv(7, 7, board.Black), mv(8, 7, board.White), mv(8, 6, board.Black)},
		Evaluation: Balanced, EvaluationScore: 8,
		Description:    "A flexible direct opening with multiple development directions.",
		KeyIdeas:       []string{"Black pressures the vertical", "Can pivot to a diagonal attack"},
		RecommendedFor: "intermediate",
	},
	{
		Key: "sangetsu", Name: "Sơn Nguyệt", NameEN: "Mountain Moon", NameJP: "Sangetsu (山月)",
		Style: RenjuDirect,
		Moves: []board.Move{mv(7, 7, board.Black), mv(8, 7, board.White), mv(8, 8, board.Black)},
		Evaluation: Balanced, EvaluationScore: 3,
		Description:    "A defensive direct opening suited to beginners.",
		KeyIdeas:       []string{"Black develops safely", "Few complex variations"},
		RecommendedFor: "beginner",
	},
	{
		Key: "shingetsu", Name: "Tân Nguyệt", NameEN: "New Moon", NameJP: "Shingetsu (新月)",
		Style: RenjuDirect,
		Moves: []board.Move{mv(7, 7, board.Black), mv(8, 7, board.White), mv(9, 7, board.Black)},
		Evaluation: Disadvantage, EvaluationScore: -5,
		Description:    "A weak direct opening; Black's third move overextends.",
		KeyIdeas:       []string{"Black drifts away from the center", "White should attack immediately"},
		RecommendedFor: "advanced",
	},
	{
		Key: "meisui", Name: "Minh Tinh", NameEN: "Bright Star", NameJP: "Meisui (明星)",
		Style: RenjuDirect,
		Moves: []board.Move{mv(7, 7, board.Black), mv(7, 8, board.White), mv(6, 6, board.Black)},
		Evaluation: Balanced, EvaluationScore: 7,
		Description:    "A balanced opening with several follow-up variations.",
		KeyIdeas:       []string{"Black develops diagonally", "White can counterattack"},
		RecommendedFor: "intermediate",
	},
	{
		Key: "chosei", Name: "Trường Tinh", NameEN: "Long Star", NameJP: "Chosei (長星)",
		Style: RenjuDirect,
		Moves: []board.Move{mv(7, 7, board.Black), mv(7, 8, board.White), mv(7, 6, board.Black)},
		Evaluation: Advantage, EvaluationScore: 10,
		Description:    "A strong horizontal-line direct opening.",
		KeyIdeas:       []string{"Black controls the horizontal", "Can expand to both sides"},
		RecommendedFor: "beginner",
	},
	{
		Key: "kosei", Name: "Hằng Tinh", NameEN: "Fixed Star", NameJP: "Kosei (恒星)",
		Style: RenjuIndirect,
		Moves: []board.Move{mv(7, 7, board.Black), mv(8, 8, board.White), mv(6, 6, board.Black)},
		Evaluation: Balanced, EvaluationScore: 5,
		Description:    "A balanced indirect opening with diagonal symmetry.",
		KeyIdeas:       []string{"Black and White mirror across the diagonal"},
		RecommendedFor: "intermediate",
	},
	{
		Key: "keigetsu", Name: "Tuệ Nguyệt", NameEN: "Wise Moon", NameJP: "Keigetsu (慧月)",
		Style: RenjuIndirect,
		Moves: []board.Move{mv(7, 7, board.Black), mv(8, 8, board.White), mv(6, 7, board.Black)},
		Evaluation: Advantage, EvaluationScore: 12,
		Description:    "An attacking indirect opening; White is awkwardly placed.",
		KeyIdeas:       []string{"Black builds an attacking formation", "Several complex continuations"},
		RecommendedFor: "advanced",
	},
	{
		Key: "geigetsu", Name: "Kình Nguyệt", NameEN: "Whale Moon", NameJP: "Geigetsu (鯨月)",
		Style: RenjuIndirect,
		Moves: []board.Move{mv(7, 7, board.Black), mv(8, 8, board.White), mv(9, 9, board.Black)},
		Evaluation: Disadvantage, EvaluationScore: -5,
		Description: "A weak indirect opening; continuing the diagonal overextends.",
		KeyIdeas:    []string{"Black drifts from the center", "White holds the advantage"},
		CommonMistakes: []Mistake{
			{MoveNumber: 3, WrongMove: board.Coordinate{Row: 9, Col: 9}, CorrectMove: board.Coordinate{Row: 6, Col: 6},
				Explanation: "Black should reverse direction instead of continuing the diagonal", Severity: "major"},
		},
		RecommendedFor: "advanced",
	},
	{
		Key: "sosei", Name: "Sơ Tinh", NameEN: "Sparse Star", NameJP: "Sosei (疎星)",
		Style: RenjuIndirect,
		Moves: []board.Move{mv(7, 7, board.Black), mv(8, 8, board.White), mv(5, 5, board.Black)},
		Evaluation: Disadvantage, EvaluationScore: -10,
		Description: "A weak indirect opening; the third move is too far from the center.",
		KeyIdeas:    []string{"Move 3 loses central control"},
		CommonMistakes: []Mistake{
			{MoveNumber: 3, WrongMove: board.Coordinate{Row: 5, Col: 5}, CorrectMove: board.Coordinate{Row: 6, Col: 6},
				Explanation: "Move 3 is too far from the center, losing control", Severity: "critical"},
		},
		RecommendedFor: "advanced",
	},
	{
		Key: "gomoku_center", Name: "Kiểm Soát Trung Tâm", NameEN: "Center Control", NameJP: "Center Control",
		Style: GomokuDirect,
		Moves: []board.Move{mv(7, 7, board.Black), mv(8, 7, board.White), mv(7, 8, board.Black)},
		Evaluation: Advantage, EvaluationScore: 15,
		Description:    "Black takes central control in freestyle Gomoku.",
		KeyIdeas:       []string{"Black controls the center", "Can develop in any direction"},
		RecommendedFor: "beginner",
	},
	{
		Key: "gomoku_diagonal", Name: "Tấn Công Chéo", NameEN: "Diagonal Attack", NameJP: "Diagonal Attack",
		Style: GomokuDirect,
		Moves: []board.Move{mv(7, 7, board.Black), mv(8, 8, board.White), mv(6, 6, board.Black)},
		Evaluation: Advantage, EvaluationScore: 12,
		Description:    "Black builds a strong diagonal line.",
		KeyIdeas:       []string{"Black controls the diagonal", "Early VCF tries possible"},
		RecommendedFor: "beginner",
	},
	{
		Key: "gomoku_knight", Name: "Nước Mã", NameEN: "Knight's Move", NameJP: "Knight's Move",
		Style: GomokuIndirect,
		Moves: []board.Move{mv(7, 7, board.Black), mv(8, 8, board.White), mv(5, 6, board.Black)},
		Evaluation: Balanced, EvaluationScore: 5,
		Description:    "An unpredictable knight's-move opening.",
		KeyIdeas:       []string{"Black creates a hard-to-read formation"},
		RecommendedFor: "intermediate",
	},
	{
		Key: "gomoku_scattered", Name: "Phân Tán", NameEN: "Scattered Opening", NameJP: "Scattered Opening",
		Style: GomokuIndirect,
		Moves: []board.Move{mv(7, 7, board.Black), mv(9, 9, board.White), mv(5, 5, board.Black)},
		Evaluation: Balanced, EvaluationScore: 0,
		Description:    "Both sides play far apart; an open, long-term game.",
		KeyIdeas:       []string{"Open position", "Requires long-term strategy"},
		RecommendedFor: "advanced",
	},
}

// ByKey looks an opening up by its table key (e.g. "kansei").
func ByKey(key string) (Record, bool) {
	for _, r := range Index {
		if r.Key == key {
			return r, true
		}
	}
	return Record{}, false
}

// Identify matches moves against the opening book's move prefixes,
// returning the first opening whose recorded sequence is a prefix of
// moves. Per spec, at least three plies are required before a match is
// attempted.
func Identify(moves []board.Move) (Record, bool) {
	if len(moves) < 3 {
		return Record{}, false
	}
	for _, r := range Index {
		if isPrefix(r.Moves, moves) {
			return r, true
		}
	}
	return Record{}, false
}

func isPrefix(prefix, moves []board.Move) bool {
	if len(prefix) > len(moves) {
		return false
	}
	for i, m := range prefix {
		if moves[i].Coordinate != m.Coordinate || moves[i].Stone != m.Stone {
			return false
		}
	}
	return true
}

// CheckMistakes reports the record's known mistakes that actually
// occurred in moves, by comparing the recorded wrong move against the
// move played at that move number.
func CheckMistakes(r Record, moves []board.Move) []Mistake {
	var hits []Mistake
	for _, m := range r.CommonMistakes {
		if m.MoveNumber < 1 || m.MoveNumber > len(moves) {
			continue
		}
		played := moves[m.MoveNumber-1]
		if played.Coordinate == m.WrongMove {
			hits = append(hits, m)
		}
	}
	return hits
}
