package learner

import (
	"context"
	"errors"

	"github.com/robalobadob/tictactoe/internal/board"
)

// fixedRand always returns the same values; IntN clamps n-1.
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }

func (r fixedRand) IntN(n int) int {
	if r.n >= n {
		return n - 1
	}
	return r.n
}

// noExplore keeps the policy on its exploitation branch.
var noExplore = fixedRand{f: 0.5}

// b builds a board from a 9-character key, e.g. "oo-xx----".
func b(key string) board.Board {
	bd, err := board.ParseKey(key)
	if err != nil {
		panic(err)
	}
	return bd
}

type failingKV struct{}

var errKV = errors.New("kv unavailable")

func (failingKV) Get(context.Context, string) (string, bool, error) { return "", false, errKV }
func (failingKV) Set(context.Context, string, string) error        { return errKV }
