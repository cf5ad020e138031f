// internal/learner/policy.go
//
// Move policy for the adaptive opponent. Decision order, each step
// short-circuiting:
//   1. win now;
//   2. block the human's win;
//   3. no statistics for this board -> fallback strategy;
//   4. rank empty slots by learned score, then confidence;
//   5. with probability ExplorationRate play a random empty slot instead.
//
// The policy looks exactly one ply ahead and never searches.

package learner

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/tictactoe/internal/board"
)

// ExplorationRate is the probability of a random legal move.
const ExplorationRate = 0.01

// confidenceSamples is the sample count at which confidence saturates.
const confidenceSamples = 5

// Rand is the source of uniform randomness the policy consumes.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// globalRand uses the package-level math/rand/v2 functions, which are safe
// for concurrent use.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// Candidate is one ranked empty slot.
type Candidate struct {
	Slot       int     `json:"slot"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	Total      int     `json:"total"`
}

// Policy chooses moves for Self against Human.
type Policy struct {
	Store           *PatternStore
	Self            board.Mark
	Human           board.Mark
	ExplorationRate float64
	Rand            Rand
}

func (p *Policy) rng() Rand {
	if p.Rand == nil {
		return globalRand{}
	}
	return p.Rand
}

// ChooseMove returns the slot to mark next. The board must have at least one
// empty slot; on a full board it returns board.NoMove.
func (p *Policy) ChooseMove(b board.Board) int {
	if b.Full() {
		return board.NoMove
	}
	if mv := board.FindOneMoveWin(p.Self, b); mv != board.NoMove {
		return mv
	}
	if mv := board.FindOneMoveWin(p.Human, b); mv != board.NoMove {
		return mv
	}

	key := board.Key(b)
	empty := b.EmptySlots()
	stats, ok := p.Store.Get(key)
	if !ok {
		return p.Fallback(b)
	}

	ranked := rank(empty, stats)
	if p.rng().Float64() < p.ExplorationRate {
		mv := empty[p.rng().IntN(len(empty))]
		log.Debug().Str("key", key).Int("move", mv).Msg("opponent exploring")
		return mv
	}
	log.Debug().Str("key", key).Int("move", ranked[0].Slot).Float64("score", ranked[0].Score).Msg("opponent using learned move")
	return ranked[0].Slot
}

// Rank scores every empty slot of b from the store, best first.
func (p *Policy) Rank(b board.Board) []Candidate {
	stats, _ := p.Store.Get(board.Key(b))
	return rank(b.EmptySlots(), stats)
}

// rank scores slots (in index order) and sorts them by score then confidence.
// The sort is stable, so ties keep slot order.
func rank(slots []int, stats map[int]Stats) []Candidate {
	out := make([]Candidate, 0, len(slots))
	for _, slot := range slots {
		c := Candidate{Slot: slot}
		if st, ok := stats[slot]; ok && st.Total > 0 {
			total := float64(st.Total)
			c.Score = 2*float64(st.Wins)/total + float64(st.Draws)/total
			c.Confidence = math.Min(1, total/confidenceSamples)
			c.Total = st.Total
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Confidence > out[j].Confidence
	})
	return out
}
