// main.go
//
// Entry point of the tic-tac-toe backend.
//   - Loads .env, sets the log level.
//   - Opens and migrates the SQLite database.
//   - Restores the opponent's memory, scores and saved mode.
//   - Serves HTTP until SIGINT/SIGTERM, then shuts down and saves once more.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/tictactoe/internal/db"
	"github.com/robalobadob/tictactoe/internal/httpserver"
	"github.com/robalobadob/tictactoe/internal/learner"
	"github.com/robalobadob/tictactoe/internal/profile"
	"github.com/robalobadob/tictactoe/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	dbPath := getEnv("DB_PATH", "./data/tictactoe.db")
	sqlDB, err := db.OpenAndMigrate(dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", dbPath).Msg("open database")
	}
	defer sqlDB.Close()

	ctx := context.Background()
	kv := store.NewSQLiteKV(sqlDB)
	ai := learner.New(kv, nil)
	ai.Load(ctx)
	prof := profile.New(kv)
	prof.Load(ctx)

	srv := httpserver.New(httpserver.Deps{
		Games:   store.NewMemoryStore(),
		AI:      ai,
		Profile: prof,
		GameLog: store.NewGameLog(sqlDB),
	}, httpserver.ConfigFromEnv())

	port := getEnv("PORT", "5175")
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", port).Str("db", dbPath).Msg("starting tictactoe server")
		errCh <- srv.Start(":" + port)
	}()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-sigCtx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server exited")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown failed")
	}
	ai.Save(shutdownCtx)
	log.Info().Msg("bye")
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
