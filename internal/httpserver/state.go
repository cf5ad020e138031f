// internal/httpserver/state.go
//
// Responsibilities:
//   - Build the JSON view of a game shared by HTTP responses and the
//     websocket feed.
//   - Expose the most recent placement so clients can highlight it.

package httpserver

import (
	"github.com/robalobadob/tictactoe/internal/board"
	"github.com/robalobadob/tictactoe/internal/game"
)

// gameState is the JSON view of a game sent to clients over HTTP and
// websocket alike.
type gameState struct {
	GameID     string      `json:"gameId"`
	Mode       game.Mode   `json:"mode"`
	Board      board.Board `json:"board"`
	Current    board.Mark  `json:"current"`
	Status     string      `json:"status"` // "playing" | "finished"
	Finished   bool        `json:"finished"`
	Winner     board.Mark  `json:"winner"`
	Line       *board.Line `json:"line,omitempty"`
	History    []game.Move `json:"history"`
	NextToFade []int       `json:"nextToFade"`
	LastMove   *game.Move  `json:"lastMove,omitempty"`

	// Set on move responses only.
	Removed      *int            `json:"removed,omitempty"` // slot faded by the caller's move
	OpponentMove *game.Placement `json:"opponentMove,omitempty"`
}

func stateOf(g *game.Game) gameState {
	st := gameState{
		GameID:     g.ID,
		Mode:       g.Mode,
		Board:      g.Board,
		Current:    g.Current,
		Status:     g.Status(),
		Finished:   g.Finished,
		Winner:     g.Winner,
		History:    g.History.All(),
		NextToFade: g.NextToFade(),
	}
	if st.History == nil {
		st.History = []game.Move{}
	}
	if last, ok := g.History.Last(); ok {
		st.LastMove = &last
	}
	if g.Winner != board.Empty {
		line := g.Line
		st.Line = &line
	}
	return st
}
