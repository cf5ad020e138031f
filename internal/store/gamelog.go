// internal/store/gamelog.go
//
// Finished-games log in the SQLite "games" table.
// Responsibilities:
//   - Append one row every time a game ends (restarted games log each round).
//   - List the most recent rows for GET /games/recent.

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/robalobadob/tictactoe/internal/game"
)

// GameRow is one finished game as listed by RecentGames.
type GameRow struct {
	ID         string `json:"id"`
	Mode       string `json:"mode"`
	Winner     string `json:"winner"`
	Moves      int    `json:"moves"`
	FinishedAt string `json:"finishedAt"`
}

// GameLog records finished games in the "games" table.
type GameLog struct{ db *sql.DB }

func NewGameLog(db *sql.DB) *GameLog { return &GameLog{db: db} }

// RecordFinished appends one row for a finished game.
func (l *GameLog) RecordFinished(ctx context.Context, g *game.Game) error {
	_, err := l.db.ExecContext(ctx, `
        INSERT INTO games (game_id, mode, winner, moves, finished_at)
        VALUES (?, ?, ?, ?, ?)`,
		g.ID, string(g.Mode), string(g.Winner), g.History.Len(), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// RecentGames lists finished games, newest first. Default limit is 20.
func (l *GameLog) RecentGames(ctx context.Context, limit int) ([]GameRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.QueryContext(ctx, `
        SELECT game_id, mode, winner, moves, finished_at
        FROM games
        ORDER BY finished_at DESC, id DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]GameRow, 0, limit)
	for rows.Next() {
		var r GameRow
		if err := rows.Scan(&r.ID, &r.Mode, &r.Winner, &r.Moves, &r.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
