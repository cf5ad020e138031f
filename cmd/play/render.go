// cmd/play/render.go
//
// Responsibilities:
//   - Draw the board, scores and prompts for the terminal client.
//   - Color marks with termenv; fading marks are faint and a winning line
//     is reversed.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/robalobadob/tictactoe/internal/board"
	"github.com/robalobadob/tictactoe/internal/game"
	"github.com/robalobadob/tictactoe/internal/profile"
)

const (
	colorX = "#E88388"
	colorO = "#66C2CD"
)

// renderBoard draws g as a 3x3 grid. Empty slots show their number, marks
// about to fade are faint and the winning line is reversed.
func renderBoard(out *termenv.Output, g *game.Game) string {
	fading := map[int]bool{}
	for _, s := range g.NextToFade() {
		fading[s] = true
	}
	winning := map[int]bool{}
	if g.Winner != board.Empty {
		for _, s := range g.Line {
			winning[s] = true
		}
	}

	var sb strings.Builder
	for row := 0; row < 3; row++ {
		cells := make([]string, 3)
		for col := 0; col < 3; col++ {
			slot := row*3 + col
			cells[col] = cell(out, g.Board[slot], slot, fading[slot], winning[slot])
		}
		sb.WriteString(" " + strings.Join(cells, " │ ") + "\n")
		if row < 2 {
			sb.WriteString("───┼───┼───\n")
		}
	}
	return sb.String()
}

func cell(out *termenv.Output, m board.Mark, slot int, fading, winning bool) string {
	if m == board.Empty {
		return out.String(strconv.Itoa(slot + 1)).Faint().String()
	}
	st := out.String(string(m)).Bold()
	switch m {
	case board.X:
		st = st.Foreground(out.Color(colorX))
	case board.O:
		st = st.Foreground(out.Color(colorO))
	}
	if fading {
		st = st.Faint().Underline()
	}
	if winning {
		st = st.Reverse()
	}
	return st.String()
}

func statusLine(g *game.Game) string {
	if g.Finished {
		switch {
		case g.Mode == game.ModeAI && g.Winner == game.OpponentMark:
			return "the opponent wins (n: new game)"
		case g.Mode == game.ModeAI:
			return "you win (n: new game)"
		default:
			return fmt.Sprintf("%s wins (n: new game)", g.Winner)
		}
	}
	return fmt.Sprintf("[%s] %s to move", g.Mode, g.Current)
}

func scoreLine(mode game.Mode, s profile.Scores) string {
	if mode == game.ModeHuman {
		return fmt.Sprintf("x %d : %d o", s.Human.X, s.Human.O)
	}
	return fmt.Sprintf("you %d : %d opponent", s.AI.Player, s.AI.AI)
}
