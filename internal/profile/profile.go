// internal/profile/profile.go
//
// Per-installation records that sit next to the adaptive opponent's memory:
//   - score tallies for both modes ("ai": you vs the opponent, "human": x vs o),
//   - the selected opponent mode,
//   - the first-visit marker.
//
// Values are cached in memory and written through to the key/value store on
// every change. Write failures are logged and ignored; a corrupt record is
// replaced by its default.

package profile

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/tictactoe/internal/board"
	"github.com/robalobadob/tictactoe/internal/game"
	"github.com/robalobadob/tictactoe/internal/store"
)

// Record names, shared with the browser build.
const (
	ScoresRecord  = "ticTacToeScores"
	ModeRecord    = "ticTacToePlayerMode"
	VisitedRecord = "ticTacToeVisited"
)

// AIScores tallies ModeAI games.
type AIScores struct {
	Player int `json:"player"` // the human, always "x"
	AI     int `json:"ai"`     // the adaptive opponent, always "o"
}

// HumanScores tallies ModeHuman games.
type HumanScores struct {
	X int `json:"x"`
	O int `json:"o"`
}

// Scores holds both independent tallies.
type Scores struct {
	AI    AIScores    `json:"ai"`
	Human HumanScores `json:"human"`
}

// Record counts a win for winner in mode. An empty winner changes nothing.
func (s *Scores) Record(mode game.Mode, winner board.Mark) {
	switch mode {
	case game.ModeAI:
		switch winner {
		case game.HumanMark:
			s.AI.Player++
		case game.OpponentMark:
			s.AI.AI++
		}
	case game.ModeHuman:
		switch winner {
		case board.X:
			s.Human.X++
		case board.O:
			s.Human.O++
		}
	}
}

// Reset zeroes the tally of one mode only.
func (s *Scores) Reset(mode game.Mode) {
	switch mode {
	case game.ModeAI:
		s.AI = AIScores{}
	case game.ModeHuman:
		s.Human = HumanScores{}
	}
}

// Profile caches and persists the records.
type Profile struct {
	kv     store.KV
	mu     sync.Mutex
	scores Scores
	mode   game.Mode
}

// New returns a Profile with default values; call Load to read stored ones.
func New(kv store.KV) *Profile {
	return &Profile{kv: kv, mode: game.ModeAI}
}

// Load reads scores and mode. Missing or corrupt records keep their defaults.
func (p *Profile) Load(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if raw, ok := p.get(ctx, ScoresRecord); ok {
		var s Scores
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			log.Warn().Err(err).Str("record", ScoresRecord).Msg("corrupt scores; resetting")
			s = Scores{}
		}
		p.scores = s
	}
	if raw, ok := p.get(ctx, ModeRecord); ok {
		if m, valid := game.ParseMode(raw); valid {
			p.mode = m
		} else {
			log.Warn().Str("record", ModeRecord).Str("value", raw).Msg("unknown mode; using ai")
			p.mode = game.ModeAI
		}
	}
}

// Scores returns the current tallies.
func (p *Profile) Scores() Scores {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scores
}

// RecordWin counts a win and persists the tallies.
func (p *Profile) RecordWin(ctx context.Context, mode game.Mode, winner board.Mark) Scores {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scores.Record(mode, winner)
	p.saveScores(ctx)
	return p.scores
}

// ResetScores zeroes one mode's tally and persists the tallies.
func (p *Profile) ResetScores(ctx context.Context, mode game.Mode) Scores {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scores.Reset(mode)
	p.saveScores(ctx)
	return p.scores
}

// Mode returns the selected opponent mode.
func (p *Profile) Mode() game.Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// SetMode selects and persists the opponent mode.
func (p *Profile) SetMode(ctx context.Context, mode game.Mode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = mode
	p.set(ctx, ModeRecord, string(mode))
}

// FirstVisit reports whether the visited marker was absent, and writes it.
// A storage read error counts as "already visited".
func (p *Profile) FirstVisit(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok, err := p.kv.Get(ctx, VisitedRecord)
	if err != nil {
		log.Warn().Err(err).Str("record", VisitedRecord).Msg("read visited marker")
		return false
	}
	if ok {
		return false
	}
	p.set(ctx, VisitedRecord, "true")
	return true
}

func (p *Profile) saveScores(ctx context.Context) {
	raw, err := json.Marshal(p.scores)
	if err != nil {
		log.Warn().Err(err).Msg("encode scores")
		return
	}
	p.set(ctx, ScoresRecord, string(raw))
}

func (p *Profile) get(ctx context.Context, key string) (string, bool) {
	v, ok, err := p.kv.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("record", key).Msg("load record")
		return "", false
	}
	return v, ok
}

func (p *Profile) set(ctx context.Context, key, value string) {
	if err := p.kv.Set(ctx, key, value); err != nil {
		log.Warn().Err(err).Str("record", key).Msg("save record")
	}
}
