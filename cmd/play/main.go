// cmd/play/main.go
//
// Terminal client. Plays against the same opponent memory, scores and saved
// mode as the HTTP server by opening the same SQLite database.
//
// Commands at the prompt:
//
//	1-9   place a mark (slots numbered left to right, top to bottom)
//	n     new game
//	m     switch between "ai" and "human" mode (saved) and start over
//	s     show scores
//	r     reset the scores of the current mode
//	q     quit
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/tictactoe/internal/db"
	"github.com/robalobadob/tictactoe/internal/game"
	"github.com/robalobadob/tictactoe/internal/learner"
	"github.com/robalobadob/tictactoe/internal/match"
	"github.com/robalobadob/tictactoe/internal/profile"
	"github.com/robalobadob/tictactoe/internal/store"
)

func main() {
	_ = godotenv.Load()
	dbPath := flag.String("db", getEnv("DB_PATH", "./data/tictactoe.db"), "SQLite database (one process per database at a time; the last writer wins)")
	modeFlag := flag.String("mode", "", `"ai" or "human" (default: saved mode)`)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "warn")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	sqlDB, err := db.OpenAndMigrate(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *dbPath).Msg("open database")
	}
	defer sqlDB.Close()

	ctx := context.Background()
	kv := store.NewSQLiteKV(sqlDB)
	ai := learner.New(kv, nil)
	ai.Load(ctx)
	prof := profile.New(kv)
	prof.Load(ctx)

	if *modeFlag != "" {
		m, ok := game.ParseMode(*modeFlag)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown mode %q\n", *modeFlag)
			os.Exit(2)
		}
		prof.SetMode(ctx, m)
	}

	p := &player{
		ref: &match.Referee{
			AI:      ai,
			Profile: prof,
			GameLog: store.NewGameLog(sqlDB),
		},
		out: termenv.NewOutput(os.Stdout),
	}
	if err := p.run(ctx, os.Stdin); err != nil {
		log.Error().Err(err).Msg("read input")
	}
}

// player owns the terminal session.
type player struct {
	ref *match.Referee
	out *termenv.Output
	g   *game.Game
}

func (p *player) run(ctx context.Context, in io.Reader) error {
	p.g = game.New(p.ref.Profile.Mode())
	if p.ref.Profile.FirstVisit(ctx) {
		fmt.Fprintln(p.out, "Each side keeps at most three marks; a fourth one fades your oldest.")
	}
	p.show()

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(p.out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(p.out)
			return sc.Err()
		}
		switch cmd := strings.TrimSpace(strings.ToLower(sc.Text())); cmd {
		case "":
		case "q", "quit", "exit":
			return nil
		case "n":
			p.g = game.New(p.g.Mode)
			p.show()
		case "m":
			next := game.ModeHuman
			if p.g.Mode == game.ModeHuman {
				next = game.ModeAI
			}
			p.ref.Profile.SetMode(ctx, next)
			p.g = game.New(next)
			p.show()
		case "s":
			fmt.Fprintln(p.out, scoreLine(p.g.Mode, p.ref.Profile.Scores()))
		case "r":
			p.ref.Profile.ResetScores(ctx, p.g.Mode)
			fmt.Fprintln(p.out, scoreLine(p.g.Mode, p.ref.Profile.Scores()))
		default:
			n, err := strconv.Atoi(cmd)
			if err != nil {
				fmt.Fprintln(p.out, "type 1-9, n, m, s, r or q")
				continue
			}
			p.move(ctx, n-1)
		}
	}
}

func (p *player) move(ctx context.Context, slot int) {
	turn, err := p.ref.Move(ctx, p.g, slot)
	switch {
	case errors.Is(err, game.ErrGameFinished):
		fmt.Fprintln(p.out, "game over, type n for a new one")
		return
	case err != nil:
		fmt.Fprintln(p.out, err)
		return
	}
	if turn.Opponent != nil {
		fmt.Fprintf(p.out, "opponent plays %d\n", turn.Opponent.Slot+1)
	}
	p.show()
}

func (p *player) show() {
	fmt.Fprint(p.out, renderBoard(p.out, p.g))
	fmt.Fprintln(p.out, statusLine(p.g))
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
