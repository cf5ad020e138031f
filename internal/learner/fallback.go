// internal/learner/fallback.go
//
// Responsibilities:
//   - Pick a move for boards with no learned stats:
//     win, block, center, free corner, then any free slot.

package learner

import "github.com/robalobadob/tictactoe/internal/board"

// Fallback is the fixed strategy used when nothing has been learned for a
// board: win, block, center, a random free corner, a random free slot.
func (p *Policy) Fallback(b board.Board) int {
	if mv := board.FindOneMoveWin(p.Self, b); mv != board.NoMove {
		return mv
	}
	if mv := board.FindOneMoveWin(p.Human, b); mv != board.NoMove {
		return mv
	}
	if b.IsEmpty(board.Center) {
		return board.Center
	}

	var corners []int
	for _, c := range board.Corners {
		if b.IsEmpty(c) {
			corners = append(corners, c)
		}
	}
	if len(corners) > 0 {
		return corners[p.rng().IntN(len(corners))]
	}

	empty := b.EmptySlots()
	if len(empty) == 0 {
		return board.NoMove
	}
	return empty[p.rng().IntN(len(empty))]
}
