// internal/game/types.go
//
// Core type definitions for a fading tic-tac-toe session.
// Defines:
//   - Mode: who sits on the "o" side (the adaptive opponent or a second human).
//   - Game: state for a single in-progress or finished game.
//   - Placement: what happened when a mark was placed.

package game

import (
	"errors"

	"github.com/robalobadob/tictactoe/internal/board"
)

// Mode selects the opponent for a game.
type Mode string

const (
	ModeAI    Mode = "ai"    // human "x" against the adaptive "o"
	ModeHuman Mode = "human" // two humans sharing one board
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeAI:
		return ModeAI, true
	case ModeHuman:
		return ModeHuman, true
	}
	return "", false
}

const (
	// HumanMark always opens the game.
	HumanMark = board.X
	// OpponentMark is played by the adaptive opponent in ModeAI.
	OpponentMark = board.O
	// MaxMarks is how many marks a side may keep on the board.
	MaxMarks = 3
)

var (
	ErrGameFinished = errors.New("game finished")
	ErrInvalidSlot  = errors.New("invalid slot")
	ErrSlotTaken    = errors.New("slot already taken")
	ErrNotYourTurn  = errors.New("not your turn")
)

// Game holds the state of a single session.
type Game struct {
	ID       string      // Unique game identifier (uuid).
	Mode     Mode        // Opponent mode, fixed for the game's lifetime.
	Board    board.Board // Current slot contents.
	Current  board.Mark  // Side to move.
	History  History     // Every placement, with the board before it.
	Finished bool        // True once a line is completed.
	Winner   board.Mark  // Empty unless Finished.
	Line     board.Line  // Winning triple, valid when Winner != Empty.

	// placed keeps each side's still-present slots, oldest first.
	placed map[board.Mark][]int
}

// Placement describes the outcome of one Place call.
type Placement struct {
	Mark    board.Mark `json:"mark"`
	Slot    int        `json:"slot"`
	Removed int        `json:"removed"` // faded slot, or board.NoMove
}
