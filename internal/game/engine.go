// internal/game/engine.go
//
// Game engine for a single fading tic-tac-toe session.
// Responsibilities:
//   - Create new games ("x" always opens).
//   - Validate and apply placements (turn, bounds, occupancy).
//   - Enforce the limited-marks rule: a side keeps at most MaxMarks marks;
//     placing one more fades that side's oldest mark.
//   - Detect the end of the game after the fade has been applied.
//
// Notes:
//   - With at most six marks on nine slots the board can never fill up, so a
//     game only ends with a completed line (or is discarded by starting anew).
//   - The engine does not know about learning; callers read Game.History.
package game

import (
	"github.com/google/uuid"

	"github.com/robalobadob/tictactoe/internal/board"
)

// New constructs a new game in the given mode.
func New(mode Mode) *Game {
	if _, ok := ParseMode(string(mode)); !ok {
		mode = ModeAI
	}
	g := &Game{ID: uuid.NewString(), Mode: mode}
	g.Reset()
	return g
}

// Reset clears the board and history, keeping ID and mode.
func (g *Game) Reset() {
	g.Board = board.Board{}
	g.Current = HumanMark
	g.History.Clear()
	g.Finished = false
	g.Winner = board.Empty
	g.Line = board.Line{}
	g.placed = map[board.Mark][]int{board.X: nil, board.O: nil}
}

// Place puts mark on slot for the side to move.
//
// Validation rules:
//   - Game must not be finished.
//   - mark must be the side to move.
//   - slot must be in 0..8 and empty.
//
// State transitions:
//   - The move is recorded with the board as it was before it.
//   - If the side now has more than MaxMarks marks, its oldest one is removed.
//   - A completed line finishes the game; otherwise the turn passes.
func (g *Game) Place(mark board.Mark, slot int) (Placement, error) {
	if g.Finished {
		return Placement{}, ErrGameFinished
	}
	if mark != g.Current {
		return Placement{}, ErrNotYourTurn
	}
	if !board.InBounds(slot) {
		return Placement{}, ErrInvalidSlot
	}
	if g.Board[slot] != board.Empty {
		return Placement{}, ErrSlotTaken
	}
	if g.placed == nil {
		g.placed = g.rebuildPlaced()
	}

	before := g.Board
	g.Board[slot] = mark
	g.History.Record(mark, slot, before)

	p := Placement{Mark: mark, Slot: slot, Removed: board.NoMove}
	q := append(g.placed[mark], slot)
	if len(q) > MaxMarks {
		p.Removed = q[0]
		g.Board[q[0]] = board.Empty
		q = q[1:]
	}
	g.placed[mark] = q

	if w, line, ok := board.FindCompletedLine(g.Board); ok {
		g.Finished, g.Winner, g.Line = true, w, line
		return p, nil
	}
	g.Current = board.Opponent(mark)
	return p, nil
}

// NextToFade returns, for each side holding exactly MaxMarks marks, the slot
// that will disappear on that side's next placement ("x" first).
func (g *Game) NextToFade() []int {
	out := []int{}
	for _, m := range []board.Mark{board.X, board.O} {
		if q := g.placed[m]; len(q) == MaxMarks {
			out = append(out, q[0])
		}
	}
	return out
}

// OpponentToMove reports whether the adaptive opponent should play next.
func (g *Game) OpponentToMove() bool {
	return g.Mode == ModeAI && !g.Finished && g.Current == OpponentMark
}

// Status reports a coarse string representation of the game state.
func (g *Game) Status() string {
	if g.Finished {
		return "finished"
	}
	return "playing"
}

// rebuildPlaced replays the history to recover per-side placement order.
// Used when a Game was constructed without New (e.g. decoded from storage).
func (g *Game) rebuildPlaced() map[board.Mark][]int {
	placed := map[board.Mark][]int{board.X: nil, board.O: nil}
	for _, mv := range g.History.All() {
		q := append(placed[mv.Mark], mv.Slot)
		if len(q) > MaxMarks {
			q = q[1:]
		}
		placed[mv.Mark] = q
	}
	return placed
}
