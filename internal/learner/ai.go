// internal/learner/ai.go
//
// AI bundles the pattern store, the learning rule and the move policy behind
// the surface the game layer uses:
//
//	ChooseMove(board)                 -> slot
//	LearnFromGame(history, winner)
//	LearnFromCurrentGame(history)
//	Load(ctx) / Save(ctx)
//
// Learning only touches memory. Persistence is an explicit, best-effort step:
// load and save failures are logged and never returned, and a corrupt record
// is replaced by an empty store.

package learner

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/tictactoe/internal/board"
	"github.com/robalobadob/tictactoe/internal/game"
	"github.com/robalobadob/tictactoe/internal/store"
)

// RecordName is the key/value record holding the serialized store.
const RecordName = "ticTacToeAI"

// AI is the adaptive opponent playing game.OpponentMark.
type AI struct {
	kv      store.KV
	store   *PatternStore
	learner Learner
	policy  Policy

	saveMu sync.Mutex // orders snapshot+write pairs
}

// New builds an AI with an empty store. kv may be nil for a memory-only
// opponent; rng may be nil to use math/rand/v2.
func New(kv store.KV, rng Rand) *AI {
	ps := NewPatternStore()
	return &AI{
		kv:    kv,
		store: ps,
		learner: Learner{
			Store:       ps,
			Self:        game.OpponentMark,
			Human:       game.HumanMark,
			BlockWeight: DefaultBlockWeight,
		},
		policy: Policy{
			Store:           ps,
			Self:            game.OpponentMark,
			Human:           game.HumanMark,
			ExplorationRate: ExplorationRate,
			Rand:            rng,
		},
	}
}

// Store exposes the underlying pattern store.
func (a *AI) Store() *PatternStore { return a.store }

// Policy exposes the move policy (ranking, fallback).
func (a *AI) Policy() *Policy { return &a.policy }

// ChooseMove returns the opponent's next slot for b.
func (a *AI) ChooseMove(b board.Board) int { return a.policy.ChooseMove(b) }

// LearnFromGame learns from a finished game.
func (a *AI) LearnFromGame(history []game.Move, winner board.Mark) {
	a.learner.LearnFromGame(history, winner)
}

// LearnFromCurrentGame learns from a game still in progress.
func (a *AI) LearnFromCurrentGame(history []game.Move) {
	a.learner.LearnFromCurrentGame(history)
}

// Load replaces the in-memory store with the persisted one, if any.
func (a *AI) Load(ctx context.Context) {
	if a.kv == nil {
		return
	}
	raw, ok, err := a.kv.Get(ctx, RecordName)
	if err != nil {
		log.Warn().Err(err).Str("record", RecordName).Msg("load ai data")
		return
	}
	if !ok {
		log.Info().Msg("no stored ai data; starting fresh")
		return
	}
	d, err := Decode([]byte(raw))
	if err != nil {
		log.Warn().Err(err).Str("record", RecordName).Msg("corrupt ai data; resetting")
		a.store.Restore(Data{})
		return
	}
	a.store.Restore(d)
	log.Info().Int("patterns", len(d.Patterns)).Int("games", d.GameCount).Msg("ai data loaded")
}

// Save persists the store. Failures are logged; memory stays authoritative.
func (a *AI) Save(ctx context.Context) {
	if a.kv == nil {
		return
	}
	a.saveMu.Lock()
	defer a.saveMu.Unlock()
	raw, err := a.store.Encode()
	if err != nil {
		log.Warn().Err(err).Msg("encode ai data")
		return
	}
	if err := a.kv.Set(ctx, RecordName, string(raw)); err != nil {
		log.Warn().Err(err).Str("record", RecordName).Msg("save ai data")
	}
}
