package learner

import (
	"testing"

	"github.com/robalobadob/tictactoe/internal/board"
	"github.com/robalobadob/tictactoe/internal/game"
)

func newLearner() *Learner {
	return &Learner{
		Store:       NewPatternStore(),
		Self:        game.OpponentMark,
		Human:       game.HumanMark,
		BlockWeight: DefaultBlockWeight,
	}
}

// playout plays slots alternately from a fresh ai-mode game.
func playout(t *testing.T, slots ...int) *game.Game {
	t.Helper()
	g := game.New(game.ModeAI)
	for _, s := range slots {
		if _, err := g.Place(g.Current, s); err != nil {
			t.Fatalf("place %d: %v", s, err)
		}
	}
	return g
}

func TestOutcomeFor(t *testing.T) {
	if OutcomeFor(board.O, board.O) != Win || OutcomeFor(board.O, board.X) != Loss || OutcomeFor(board.O, board.Empty) != Draw {
		t.Fatalf("unexpected outcome mapping")
	}
}

func TestLearnFromGameNeedsTwoMoves(t *testing.T) {
	l := newLearner()
	g := playout(t, 0)
	l.LearnFromGame(g.History.All(), board.X)
	if l.Store.Totals() != (Totals{}) {
		t.Fatalf("single-move history must be ignored, got %+v", l.Store.Totals())
	}
}

func TestLearnFromGameOpponentWin(t *testing.T) {
	l := newLearner()
	// x: 0, 1, 8   o: 4, 2, 6 -> o wins on the 2-4-6 diagonal
	g := playout(t, 0, 4, 1, 2, 8, 6)
	if g.Winner != board.O {
		t.Fatalf("setup: expected o to win, got %q", g.Winner)
	}
	l.LearnFromGame(g.History.All(), g.Winner)

	tot := l.Store.Totals()
	if tot.Wins != 1 || tot.Losses != 0 || tot.GameCount != 1 {
		t.Fatalf("unexpected totals %+v", tot)
	}
	for _, mv := range g.History.All() {
		stats, ok := l.Store.Get(board.Key(mv.Before))
		if mv.Mark == board.X {
			if ok {
				if _, has := stats[mv.Slot]; has {
					t.Fatalf("human move %d must not be learned", mv.Slot)
				}
			}
			continue
		}
		if st := stats[mv.Slot]; st.Wins != 1 || st.Total != 1 {
			t.Fatalf("o move %d: unexpected %+v", mv.Slot, st)
		}
	}
}

func TestLearnFromGameHumanWinReinforcesBlocks(t *testing.T) {
	l := newLearner()
	g := playout(t, 0, 4, 1, 8, 2)
	if g.Winner != board.X {
		t.Fatalf("setup: expected x to win, got %q", g.Winner)
	}
	h := g.History.All()
	decisive := h[len(h)-1]
	key := board.Key(decisive.Before)

	// Pre-existing entry for one of the blocking slots.
	l.Store.UpsertOutcome(key, 3, Draw)

	l.LearnFromGame(h, g.Winner)

	tot := l.Store.Totals()
	if tot.Losses != 1 || tot.GameCount != 1 {
		t.Fatalf("unexpected totals %+v", tot)
	}

	stats, ok := l.Store.Get(key)
	if !ok {
		t.Fatalf("expected reinforced entry for %s", key)
	}
	if _, has := stats[decisive.Slot]; has {
		t.Fatalf("winning slot %d must not be reinforced", decisive.Slot)
	}
	for _, slot := range decisive.Before.EmptySlots() {
		if slot == decisive.Slot {
			continue
		}
		// Slot 3 had one draw and gains 3 wins; the rest are seeded 3/1/4.
		if st := stats[slot]; st != (Stats{Wins: 3, Draws: 1, Total: 4}) {
			t.Fatalf("slot %d: unexpected stats %+v", slot, st)
		}
	}

	// The opponent's own moves are counted as losses.
	for _, mv := range h {
		if mv.Mark != board.O {
			continue
		}
		st, _ := l.Store.Get(board.Key(mv.Before))
		if st[mv.Slot].Losses != 1 {
			t.Fatalf("o move %d: expected a loss, got %+v", mv.Slot, st[mv.Slot])
		}
	}
}

func TestLearnFromGameDraw(t *testing.T) {
	l := newLearner()
	g := playout(t, 0, 4, 8)
	l.LearnFromGame(g.History.All(), board.Empty)
	if tot := l.Store.Totals(); tot.Draws != 1 || tot.GameCount != 1 {
		t.Fatalf("unexpected totals %+v", tot)
	}
	st, _ := l.Store.Get("x--------")
	if st[4] != (Stats{Draws: 1, Total: 1}) {
		t.Fatalf("unexpected stats %+v", st[4])
	}
}

func TestLearnFromCurrentGameCountsDrawsAndIsNotCorrected(t *testing.T) {
	l := newLearner()

	g := playout(t, 0)
	l.LearnFromCurrentGame(g.History.All())
	if l.Store.Totals().Patterns != 0 {
		t.Fatalf("single-move history must be ignored")
	}

	g = playout(t, 0, 4, 1)
	l.LearnFromCurrentGame(g.History.All())
	st, _ := l.Store.Get("x--------")
	if st[4] != (Stats{Draws: 1, Total: 1}) {
		t.Fatalf("expected a neutral draw, got %+v", st[4])
	}
	if l.Store.Totals().GameCount != 0 {
		t.Fatalf("incremental learning must not count games")
	}

	// The game goes on and o wins: the neutral draw stays.
	for _, s := range []int{2, 8, 6} {
		if _, err := g.Place(g.Current, s); err != nil {
			t.Fatalf("place: %v", err)
		}
	}
	if g.Winner != board.O {
		t.Fatalf("setup: expected o to win, got %q", g.Winner)
	}
	l.LearnFromGame(g.History.All(), g.Winner)
	st, _ = l.Store.Get("x--------")
	if st[4] != (Stats{Wins: 1, Draws: 1, Total: 2}) {
		t.Fatalf("expected draw + win, got %+v", st[4])
	}
}
