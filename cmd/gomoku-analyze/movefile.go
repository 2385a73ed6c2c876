package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ianthereal/gomoku-analyzer/internal/board"
)

// moveRecord is the on-disk shape of one ply in a move file: a
// coordinate in "H8" notation and a stone tag ("black"/"white", or
// "x"/"o").
type moveRecord struct {
	Coordinate string `json:"coordinate"`
	Stone      string `json:"stone"`
}

func parseStone(tag string) (board.Stone, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "black", "x":
		return board.Black, nil
	case "white", "o":
		return board.White, nil
	default:
		return board.Empty, fmt.Errorf("unknown stone tag %q", tag)
	}
}

// loadMoves reads a JSON array of moveRecord from path and decodes it
// into a move list in file order; it does not check turn order.
func loadMoves(path string) ([]board.Move, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading move file: %w", err)
	}

	var records []moveRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing move file: %w", err)
	}

	moves := make([]board.Move, 0, len(records))
	for i, r := range records {
		coord, err := board.ParseCoordinate(r.Coordinate)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		stone, err := parseStone(r.Stone)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		moves = append(moves, board.Move{Coordinate: coord, Stone: stone, Ordinal: i + 1})
	}
	return moves, nil
}
