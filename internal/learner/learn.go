// internal/learner/learn.go
//
// Responsibilities:
//   - Turn a finished game's history into pattern stat updates.
//   - Credit blocking moves while a game is still running.

package learner

import (
	"github.com/robalobadob/tictactoe/internal/board"
	"github.com/robalobadob/tictactoe/internal/game"
)

// Learner applies game histories to a PatternStore. Self is the mark whose
// point of view the store takes; Human is the other side.
type Learner struct {
	Store       *PatternStore
	Self        board.Mark
	Human       board.Mark
	BlockWeight int
}

// OutcomeFor maps a winner to an outcome for self. Empty means a draw.
func OutcomeFor(self, winner board.Mark) Outcome {
	switch winner {
	case self:
		return Win
	case board.Empty:
		return Draw
	default:
		return Loss
	}
}

// LearnFromGame updates the store with a finished game. Histories shorter
// than two moves are ignored.
//
// Every move made by Self is counted under the key of the board it was played
// on. When Human won, every other empty slot of the board Human won from is
// reinforced so the same position is blocked next time.
func (l *Learner) LearnFromGame(history []game.Move, winner board.Mark) {
	if len(history) < 2 {
		return
	}
	outcome := OutcomeFor(l.Self, winner)
	l.Store.recordGame(outcome)

	for _, mv := range history {
		if mv.Mark == l.Self {
			l.Store.UpsertOutcome(board.Key(mv.Before), mv.Slot, outcome)
		}
	}

	if winner == l.Human {
		l.reinforceBlocks(history[len(history)-1])
	}
}

func (l *Learner) reinforceBlocks(decisive game.Move) {
	if decisive.Mark != l.Human {
		return
	}
	key := board.Key(decisive.Before)
	for _, slot := range decisive.Before.EmptySlots() {
		if slot != decisive.Slot {
			l.Store.ReinforceBlock(key, slot, l.BlockWeight)
		}
	}
}

// LearnFromCurrentGame warms the store while a game is still running: every
// move Self has made so far is counted as a draw. These placeholder counts
// are kept when the real outcome is learned later.
func (l *Learner) LearnFromCurrentGame(history []game.Move) {
	if len(history) < 2 {
		return
	}
	for _, mv := range history {
		if mv.Mark == l.Self {
			l.Store.UpsertOutcome(board.Key(mv.Before), mv.Slot, Draw)
		}
	}
}
