package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/robalobadob/tictactoe/internal/game"
	"github.com/robalobadob/tictactoe/internal/learner"
	"github.com/robalobadob/tictactoe/internal/match"
	"github.com/robalobadob/tictactoe/internal/profile"
	"github.com/robalobadob/tictactoe/internal/store"
)

func plain(buf *bytes.Buffer) *termenv.Output {
	return termenv.NewOutput(buf, termenv.WithProfile(termenv.Ascii))
}

func TestRenderBoard(t *testing.T) {
	g := game.New(game.ModeHuman)
	for _, s := range []int{0, 4, 8} {
		if _, err := g.Place(g.Current, s); err != nil {
			t.Fatal(err)
		}
	}
	got := renderBoard(plain(&bytes.Buffer{}), g)
	want := " x │ 2 │ 3\n───┼───┼───\n 4 │ o │ 6\n───┼───┼───\n 7 │ 8 │ x\n"
	if got != want {
		t.Fatalf("got\n%s\nwant\n%s", got, want)
	}
	if s := statusLine(g); s != "[human] o to move" {
		t.Fatalf("status %q", s)
	}
}

type firstChoice struct{}

func (firstChoice) Float64() float64 { return 0.99 }
func (firstChoice) IntN(int) int     { return 0 }

func TestRunSession(t *testing.T) {
	kv := store.NewMemoryKV()
	var buf bytes.Buffer
	p := &player{
		ref: &match.Referee{AI: learner.New(kv, firstChoice{}), Profile: profile.New(kv)},
		out: plain(&buf),
	}
	in := strings.NewReader("1\n2\n4\nx\n5\ns\nq\n")
	if err := p.run(context.Background(), in); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"fades your oldest",
		"opponent plays 5",
		"opponent plays 3",
		"the opponent wins",
		"type 1-9",
		"game over",
		"you 0 : 1 opponent",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}
