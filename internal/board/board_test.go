package board

import "testing"

func TestFindCompletedLineEveryTriple(t *testing.T) {
	for _, m := range []Mark{X, O} {
		for _, l := range Triples {
			var b Board
			for _, i := range l {
				b[i] = m
			}
			got, line, ok := FindCompletedLine(b)
			if !ok {
				t.Fatalf("expected completed line %v for %q", l, m)
			}
			if got != m || line != l {
				t.Errorf("got (%q, %v), want (%q, %v)", got, line, m, l)
			}
		}
	}
}

func TestFindCompletedLineEmptyBoard(t *testing.T) {
	if m, _, ok := FindCompletedLine(Board{}); ok {
		t.Fatalf("empty board reported a line for %q", m)
	}
}

func TestFindCompletedLineScanOrder(t *testing.T) {
	// Row 0 and column 0 both complete; rows are scanned first.
	b := Board{X, X, X, X, Empty, Empty, X, Empty, Empty}
	_, line, ok := FindCompletedLine(b)
	if !ok || line != (Line{0, 1, 2}) {
		t.Fatalf("expected row {0,1,2}, got %v (ok=%v)", line, ok)
	}
}

func TestFindCompletedLineMixedMarks(t *testing.T) {
	b := Board{X, O, X, Empty, Empty, Empty, Empty, Empty, Empty}
	if _, _, ok := FindCompletedLine(b); ok {
		t.Fatalf("mixed row must not complete")
	}
}

func TestFindOneMoveWinEveryGap(t *testing.T) {
	for _, m := range []Mark{X, O} {
		for _, l := range Triples {
			for gap := 0; gap < 3; gap++ {
				var b Board
				for j, i := range l {
					if j != gap {
						b[i] = m
					}
				}
				if got := FindOneMoveWin(m, b); got != l[gap] {
					t.Errorf("mark %q line %v gap %d: got %d, want %d", m, l, gap, got, l[gap])
				}
				if got := FindOneMoveWin(Opponent(m), b); got != NoMove {
					t.Errorf("opponent of %q should have no win on %s, got %d", m, b, got)
				}
			}
		}
	}
}

func TestFindOneMoveWinBlockedTriple(t *testing.T) {
	b := Board{X, X, O, Empty, Empty, Empty, Empty, Empty, Empty}
	if got := FindOneMoveWin(X, b); got != NoMove {
		t.Fatalf("blocked row should not be a win, got %d", got)
	}
	if got := FindOneMoveWin(Empty, b); got != NoMove {
		t.Fatalf("empty mark must never win, got %d", got)
	}
}

func TestFindOneMoveWinFirstInScanOrder(t *testing.T) {
	// o can win at 2 (row 0) and at 6 (column 0); row comes first.
	b := Board{O, O, Empty, O, Empty, Empty, Empty, Empty, Empty}
	if got := FindOneMoveWin(O, b); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestKeyIsTotalAndInjective(t *testing.T) {
	seen := make(map[string]Board, 19683)
	marks := [3]Mark{Empty, X, O}
	for n := 0; n < 19683; n++ {
		var b Board
		v := n
		for i := 0; i < Size; i++ {
			b[i] = marks[v%3]
			v /= 3
		}
		k := Key(b)
		if len(k) != Size {
			t.Fatalf("key %q has length %d", k, len(k))
		}
		if prev, ok := seen[k]; ok {
			t.Fatalf("boards %s and %s share key %q", prev, b, k)
		}
		seen[k] = b
		back, err := ParseKey(k)
		if err != nil || back != b {
			t.Fatalf("ParseKey(%q) = %s, %v", k, back, err)
		}
	}
}

func TestKeyDoesNotReduceSymmetry(t *testing.T) {
	a := Board{X, Empty, Empty, Empty, Empty, Empty, Empty, Empty, Empty}
	b := Board{Empty, Empty, X, Empty, Empty, Empty, Empty, Empty, Empty}
	if Key(a) == Key(b) {
		t.Fatalf("mirrored boards must have distinct keys")
	}
}

func TestParseKeyRejectsGarbage(t *testing.T) {
	for _, k := range []string{"", "xo", "xo-xo-xo-x", "xo-xo-xoz"} {
		if _, err := ParseKey(k); err == nil {
			t.Errorf("ParseKey(%q) should fail", k)
		}
	}
}

func TestEmptySlotsAndCount(t *testing.T) {
	b := Board{X, Empty, O, Empty, X, Empty, Empty, O, Empty}
	got := b.EmptySlots()
	want := []int{1, 3, 5, 6, 8}
	if len(got) != len(want) {
		t.Fatalf("EmptySlots = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("EmptySlots = %v, want %v", got, want)
		}
	}
	if b.Count(X) != 2 || b.Count(O) != 2 {
		t.Fatalf("unexpected counts x=%d o=%d", b.Count(X), b.Count(O))
	}
	if b.Full() {
		t.Fatalf("board is not full")
	}
}
