// internal/board/board.go
//
// Board model and win evaluation for a 3x3 game.
// Responsibilities:
//   - Fixed 9-slot board (row-major, slots 0..8).
//   - Detect a completed line (three identical non-empty slots).
//   - Find a one-move-away win for a given mark.
//   - Produce the canonical board-state key used by the learner.
//
// Everything in this package is pure: no function mutates its input.

package board

import (
	"errors"
	"strings"
)

// Mark is the content of a single slot.
type Mark string

const (
	Empty Mark = ""
	X     Mark = "x"
	O     Mark = "o"
)

// Size is the number of slots on the board.
const Size = 9

// Center is the middle slot.
const Center = 4

// NoMove is returned when no slot qualifies.
const NoMove = -1

// Corners lists the corner slots in index order.
var Corners = [4]int{0, 2, 6, 8}

// Line is one winning triple of slot indices.
type Line [3]int

// Triples holds the 8 winning lines in scan order: rows, columns, diagonals.
var Triples = [8]Line{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Board is the ordered sequence of 9 slots.
type Board [Size]Mark

// Opponent returns the other side's mark. Empty maps to Empty.
func Opponent(m Mark) Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// Valid reports whether m is one of the two player marks.
func (m Mark) Valid() bool { return m == X || m == O }

// InBounds reports whether slot is a valid index.
func InBounds(slot int) bool { return slot >= 0 && slot < Size }

// IsEmpty reports whether slot is in bounds and unoccupied.
func (b Board) IsEmpty(slot int) bool {
	return InBounds(slot) && b[slot] == Empty
}

// EmptySlots returns the unoccupied slots in index order.
func (b Board) EmptySlots() []int {
	out := make([]int, 0, Size)
	for i, m := range b {
		if m == Empty {
			out = append(out, i)
		}
	}
	return out
}

// Count returns how many slots hold m.
func (b Board) Count(m Mark) int {
	n := 0
	for _, c := range b {
		if c == m {
			n++
		}
	}
	return n
}

// Full reports whether no empty slot remains.
func (b Board) Full() bool { return b.Count(Empty) == 0 }

// FindCompletedLine returns the mark and triple of the first completed line in
// scan order, or ok=false when none exists.
func FindCompletedLine(b Board) (Mark, Line, bool) {
	for _, l := range Triples {
		m := b[l[0]]
		if m != Empty && b[l[1]] == m && b[l[2]] == m {
			return m, l, true
		}
	}
	return Empty, Line{}, false
}

// FindOneMoveWin returns the empty slot that completes a line for m, or NoMove.
// A triple qualifies when exactly two of its slots hold m and the third is empty.
func FindOneMoveWin(m Mark, b Board) int {
	if !m.Valid() {
		return NoMove
	}
	for _, l := range Triples {
		own, free := 0, NoMove
		for _, i := range l {
			switch b[i] {
			case m:
				own++
			case Empty:
				free = i
			}
		}
		if own == 2 && free != NoMove {
			return free
		}
	}
	return NoMove
}

// emptyRune stands in for an empty slot inside a key.
const emptyRune = '-'

// Key returns the canonical board-state key: one character per slot in
// row-major order ('x', 'o', or '-'). Defined for every board and injective.
// Rotations and reflections of a position produce different keys.
func Key(b Board) string {
	var sb strings.Builder
	sb.Grow(Size)
	for _, m := range b {
		switch m {
		case X:
			sb.WriteByte('x')
		case O:
			sb.WriteByte('o')
		default:
			sb.WriteByte(emptyRune)
		}
	}
	return sb.String()
}

// ErrBadKey is returned by ParseKey for malformed keys.
var ErrBadKey = errors.New("board: malformed key")

// ParseKey is the inverse of Key.
func ParseKey(key string) (Board, error) {
	var b Board
	if len(key) != Size {
		return b, ErrBadKey
	}
	for i := 0; i < Size; i++ {
		switch key[i] {
		case 'x':
			b[i] = X
		case 'o':
			b[i] = O
		case emptyRune:
			b[i] = Empty
		default:
			return Board{}, ErrBadKey
		}
	}
	return b, nil
}

// String renders the board as three rows, mostly for logs and tests.
func (b Board) String() string {
	k := Key(b)
	return k[0:3] + "/" + k[3:6] + "/" + k[6:9]
}
