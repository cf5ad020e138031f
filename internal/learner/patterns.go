// internal/learner/patterns.go
//
// Pattern store: board-state key -> candidate move -> outcome counters, all
// counted from the point of view of the mark that owns the store.
//
// The store only ever grows. Its canonical serialized form is
//
//	{"patterns": {"<key>": {"<move>": {"wins","losses","draws","total"}}},
//	 "wins": n, "losses": n, "draws": n, "gameCount": n}
//
// and is shared by every game session of the process, hence the RWMutex.

package learner

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/robalobadob/tictactoe/internal/board"
)

// Outcome of a game for the store's owner.
type Outcome string

const (
	Win  Outcome = "win"
	Loss Outcome = "loss"
	Draw Outcome = "draw"
)

// DefaultBlockWeight is how hard a block-this update pushes a slot.
const DefaultBlockWeight = 3

// Stats are the counters for one (key, move) pair.
type Stats struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
	Total  int `json:"total"`
}

// Data is the serialized form of a PatternStore.
type Data struct {
	Patterns  map[string]map[int]Stats `json:"patterns"`
	Wins      int                      `json:"wins"`
	Losses    int                      `json:"losses"`
	Draws     int                      `json:"draws"`
	GameCount int                      `json:"gameCount"`
}

// Totals are the aggregate counters plus the number of known board keys.
type Totals struct {
	Wins      int `json:"wins"`
	Losses    int `json:"losses"`
	Draws     int `json:"draws"`
	GameCount int `json:"gameCount"`
	Patterns  int `json:"patterns"`
}

// PatternStore maps board-state keys to per-move statistics.
type PatternStore struct {
	mu        sync.RWMutex
	patterns  map[string]map[int]*Stats
	wins      int
	losses    int
	draws     int
	gameCount int
}

// NewPatternStore returns an empty store.
func NewPatternStore() *PatternStore {
	return &PatternStore{patterns: make(map[string]map[int]*Stats)}
}

// Get returns a copy of the per-move statistics recorded for key.
func (s *PatternStore) Get(key string) (map[int]Stats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	moves, ok := s.patterns[key]
	if !ok {
		return nil, false
	}
	out := make(map[int]Stats, len(moves))
	for mv, st := range moves {
		out[mv] = *st
	}
	return out, true
}

// entry returns the counters for (key, move), creating zeroed ones if absent.
// Caller holds s.mu.
func (s *PatternStore) entry(key string, move int) (*Stats, bool) {
	moves, ok := s.patterns[key]
	if !ok {
		moves = make(map[int]*Stats)
		s.patterns[key] = moves
	}
	st, ok := moves[move]
	if !ok {
		st = &Stats{}
		moves[move] = st
	}
	return st, ok
}

// UpsertOutcome counts one outcome for (key, move). Anything that is not Win
// or Loss counts as a draw.
func (s *PatternStore) UpsertOutcome(key string, move int, outcome Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, _ := s.entry(key, move)
	st.Total++
	switch outcome {
	case Win:
		st.Wins++
	case Loss:
		st.Losses++
	default:
		st.Draws++
	}
}

// ReinforceBlock biases key towards move. An existing entry gets +weight wins
// and +weight total; a new one is seeded with one draw on top so its score
// starts below a perfect 2.0.
func (s *PatternStore) ReinforceBlock(key string, move, weight int) {
	if weight <= 0 {
		weight = DefaultBlockWeight
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st, existed := s.entry(key, move)
	if !existed {
		*st = Stats{Wins: weight, Draws: 1, Total: weight + 1}
		return
	}
	st.Wins += weight
	st.Total += weight
}

// recordGame bumps the aggregate counter for outcome and the game count.
func (s *PatternStore) recordGame(outcome Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch outcome {
	case Win:
		s.wins++
	case Loss:
		s.losses++
	default:
		s.draws++
	}
	s.gameCount++
}

// Totals reports the aggregate counters.
func (s *PatternStore) Totals() Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Totals{
		Wins:      s.wins,
		Losses:    s.losses,
		Draws:     s.draws,
		GameCount: s.gameCount,
		Patterns:  len(s.patterns),
	}
}

// Snapshot returns a deep copy in serialized shape.
func (s *PatternStore) Snapshot() Data {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d := Data{
		Patterns:  make(map[string]map[int]Stats, len(s.patterns)),
		Wins:      s.wins,
		Losses:    s.losses,
		Draws:     s.draws,
		GameCount: s.gameCount,
	}
	for key, moves := range s.patterns {
		m := make(map[int]Stats, len(moves))
		for mv, st := range moves {
			m[mv] = *st
		}
		d.Patterns[key] = m
	}
	return d
}

// Restore replaces the store's contents with d.
func (s *PatternStore) Restore(d Data) {
	patterns := make(map[string]map[int]*Stats, len(d.Patterns))
	for key, moves := range d.Patterns {
		m := make(map[int]*Stats, len(moves))
		for mv, st := range moves {
			st := st
			m[mv] = &st
		}
		patterns[key] = m
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patterns = patterns
	s.wins, s.losses, s.draws, s.gameCount = d.Wins, d.Losses, d.Draws, d.GameCount
}

// Encode serializes the store.
func (s *PatternStore) Encode() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

// Decode parses the serialized form. Move indexes must be board slots and
// counters must be non-negative; anything else is reported as corrupt.
func Decode(raw []byte) (Data, error) {
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return Data{}, fmt.Errorf("decode patterns: %w", err)
	}
	if d.Wins < 0 || d.Losses < 0 || d.Draws < 0 || d.GameCount < 0 {
		return Data{}, fmt.Errorf("decode patterns: negative aggregate counter")
	}
	for key, moves := range d.Patterns {
		for mv, st := range moves {
			if !board.InBounds(mv) {
				return Data{}, fmt.Errorf("decode patterns: key %q has move %d", key, mv)
			}
			if st.Wins < 0 || st.Losses < 0 || st.Draws < 0 || st.Total < 0 {
				return Data{}, fmt.Errorf("decode patterns: key %q move %d has negative counter", key, mv)
			}
		}
	}
	if d.Patterns == nil {
		d.Patterns = make(map[string]map[int]Stats)
	}
	return d, nil
}
