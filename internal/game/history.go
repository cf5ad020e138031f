// internal/game/history.go
//
// Responsibilities:
//   - Keep the ordered move log of one game, each entry with the board
//     as it was before the move.
//   - The log feeds fade order, learning and the client view.

package game

import "github.com/robalobadob/tictactoe/internal/board"

// Move is one recorded placement.
type Move struct {
	Mark   board.Mark  `json:"mark"`
	Slot   int         `json:"slot"`
	Before board.Board `json:"before"` // board immediately before this move
}

// History is the ordered per-game move log. Entries are only ever appended;
// Clear is called when a game (re)starts.
type History struct {
	entries []Move
}

// Record appends one entry.
func (h *History) Record(mark board.Mark, slot int, before board.Board) {
	h.entries = append(h.entries, Move{Mark: mark, Slot: slot, Before: before})
}

func (h *History) Clear() {
	h.entries = nil
}

func (h History) Len() int {
	return len(h.entries)
}

// All returns a copy of the entries.
func (h History) All() []Move {
	return append([]Move(nil), h.entries...)
}

// Last returns the most recent entry.
func (h History) Last() (Move, bool) {
	if len(h.entries) == 0 {
		return Move{}, false
	}
	return h.entries[len(h.entries)-1], true
}
