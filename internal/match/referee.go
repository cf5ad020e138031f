// internal/match/referee.go
//
// Referee runs one turn of a game on behalf of any front end (HTTP, terminal):
//   - applies the caller's mark for the side to move;
//   - in "ai" mode lets the adaptive opponent answer right away;
//   - books finished games: score tally, learning + save (ai mode only), and
//     the finished-games log.
//
// Booking is best effort; storage failures are logged by the collaborators.
// The caller serializes access to a single game.

package match

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/tictactoe/internal/board"
	"github.com/robalobadob/tictactoe/internal/game"
	"github.com/robalobadob/tictactoe/internal/learner"
	"github.com/robalobadob/tictactoe/internal/profile"
	"github.com/robalobadob/tictactoe/internal/store"
)

var ErrNoOpponentMove = errors.New("opponent found no legal move")

// Turn is what happened during one Move call.
type Turn struct {
	Placed   game.Placement
	Opponent *game.Placement // nil unless the opponent answered
}

type Referee struct {
	AI      *learner.AI
	Profile *profile.Profile
	GameLog *store.GameLog // optional

	// OpponentDelay pauses between choosing and placing the opponent's mark.
	OpponentDelay time.Duration
}

// Move places a mark for the side to move in g, then the opponent's reply
// when g is in ai mode and still running.
func (r *Referee) Move(ctx context.Context, g *game.Game, slot int) (Turn, error) {
	if g.OpponentToMove() {
		return Turn{}, game.ErrNotYourTurn
	}
	p, err := g.Place(g.Current, slot)
	if err != nil {
		return Turn{}, err
	}
	t := Turn{Placed: p}

	switch {
	case g.Finished:
		r.finish(ctx, g)
	case g.OpponentToMove():
		reply, err := r.opponentTurn(ctx, g)
		if err != nil {
			log.Error().Err(err).Str("gameId", g.ID).Msg("opponent turn")
			break
		}
		t.Opponent = reply
	}
	return t, nil
}

// opponentTurn learns the in-progress history, chooses, optionally waits,
// and places the opponent's mark.
func (r *Referee) opponentTurn(ctx context.Context, g *game.Game) (*game.Placement, error) {
	r.AI.LearnFromCurrentGame(g.History.All())
	slot := r.AI.ChooseMove(g.Board)
	if slot == board.NoMove {
		return nil, ErrNoOpponentMove
	}
	if r.OpponentDelay > 0 {
		// Cosmetic only: a cancelled caller still gets the move.
		t := time.NewTimer(r.OpponentDelay)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
		}
	}
	p, err := g.Place(game.OpponentMark, slot)
	if err != nil {
		return nil, err
	}
	if g.Finished {
		r.finish(ctx, g)
	}
	return &p, nil
}

func (r *Referee) finish(ctx context.Context, g *game.Game) {
	ctx = context.WithoutCancel(ctx)
	scores := r.Profile.RecordWin(ctx, g.Mode, g.Winner)
	if g.Mode == game.ModeAI {
		r.AI.LearnFromGame(g.History.All(), g.Winner)
		r.AI.Save(ctx)
	}
	if r.GameLog != nil {
		if err := r.GameLog.RecordFinished(ctx, g); err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Msg("record finished game")
		}
	}
	log.Info().
		Str("gameId", g.ID).
		Str("mode", string(g.Mode)).
		Str("winner", string(g.Winner)).
		Int("moves", g.History.Len()).
		Int("lastSlot", lastSlot(g)).
		Interface("scores", scores).
		Msg("game finished")
}

func lastSlot(g *game.Game) int {
	if mv, ok := g.History.Last(); ok {
		return mv.Slot
	}
	return board.NoMove
}
