package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/robalobadob/tictactoe/internal/board"
	"github.com/robalobadob/tictactoe/internal/db"
	"github.com/robalobadob/tictactoe/internal/game"
)

func TestMemoryStoreSaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := game.New(game.ModeAI)
	if err := s.Save(ctx, g); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Get(ctx, g.ID)
	if err != nil || got != g {
		t.Fatalf("get: %v %v", got, err)
	}
	if err := s.Delete(ctx, g.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, g.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func testKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()
	if _, ok, err := kv.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}
	if err := kv.Set(ctx, "k", "one"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, "k", "two"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := kv.Get(ctx, "k")
	if err != nil || !ok || v != "two" {
		t.Fatalf("get = %q %v %v", v, ok, err)
	}
}

func TestMemoryKV(t *testing.T) {
	testKV(t, NewMemoryKV())
}

func TestSQLiteKV(t *testing.T) {
	sqlDB, err := db.OpenAndMigrate(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer sqlDB.Close()
	testKV(t, NewSQLiteKV(sqlDB))
}

func TestGameLog(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := db.OpenAndMigrate(filepath.Join(t.TempDir(), "log.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer sqlDB.Close()
	l := NewGameLog(sqlDB)

	g := game.New(game.ModeHuman)
	for _, s := range []int{0, 3, 1, 4, 2} {
		if _, err := g.Place(g.Current, s); err != nil {
			t.Fatalf("place: %v", err)
		}
	}
	if err := l.RecordFinished(ctx, g); err != nil {
		t.Fatalf("record: %v", err)
	}

	// Same game played again after a restart: a second row.
	g.Reset()
	for _, s := range []int{3, 0, 4, 1, 5} {
		if _, err := g.Place(g.Current, s); err != nil {
			t.Fatalf("place: %v", err)
		}
	}
	if err := l.RecordFinished(ctx, g); err != nil {
		t.Fatalf("record after restart: %v", err)
	}
	rows, err := l.RecentGames(ctx, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != g.ID || rows[1].ID != g.ID {
		t.Fatalf("expected 2 rows for %s, got %+v", g.ID, rows)
	}
	if rows[0].Winner != string(board.X) || rows[0].Moves != 5 || rows[0].Mode != "human" {
		t.Fatalf("unexpected row %+v", rows[0])
	}
}
