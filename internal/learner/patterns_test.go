package learner

import (
	"math/rand/v2"
	"testing"
)

func TestUpsertOutcomeCountsTwice(t *testing.T) {
	s := NewPatternStore()
	s.UpsertOutcome("x--------", 4, Win)
	s.UpsertOutcome("x--------", 4, Win)
	got, ok := s.Get("x--------")
	if !ok {
		t.Fatalf("expected entry")
	}
	if st := got[4]; st.Wins != 2 || st.Total != 2 || st.Losses != 0 || st.Draws != 0 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestUpsertOutcomeKeepsTotalInvariant(t *testing.T) {
	s := NewPatternStore()
	r := rand.New(rand.NewPCG(1, 2))
	outcomes := []Outcome{Win, Loss, Draw}
	keys := []string{"---------", "x--------", "x---o----"}
	for i := 0; i < 500; i++ {
		s.UpsertOutcome(keys[r.IntN(len(keys))], r.IntN(9), outcomes[r.IntN(3)])
	}
	for key, moves := range s.Snapshot().Patterns {
		for mv, st := range moves {
			if st.Total != st.Wins+st.Losses+st.Draws {
				t.Fatalf("%s/%d: total %d != %d+%d+%d", key, mv, st.Total, st.Wins, st.Losses, st.Draws)
			}
		}
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewPatternStore()
	s.UpsertOutcome("---------", 0, Loss)
	got, _ := s.Get("---------")
	got[0] = Stats{Wins: 99}
	again, _ := s.Get("---------")
	if again[0].Wins != 0 {
		t.Fatalf("Get must not expose internal state")
	}
	if _, ok := s.Get("missing"); ok {
		t.Fatalf("unknown key reported present")
	}
}

func TestReinforceBlockSeedsNewEntry(t *testing.T) {
	s := NewPatternStore()
	s.ReinforceBlock("xx--o----", 2, DefaultBlockWeight)
	got, _ := s.Get("xx--o----")
	want := Stats{Wins: 3, Draws: 1, Total: 4}
	if got[2] != want {
		t.Fatalf("got %+v, want %+v", got[2], want)
	}
}

func TestReinforceBlockBumpsExistingEntry(t *testing.T) {
	s := NewPatternStore()
	s.UpsertOutcome("xx--o----", 2, Loss)
	s.ReinforceBlock("xx--o----", 2, 0) // non-positive weight uses the default
	got, _ := s.Get("xx--o----")
	want := Stats{Wins: 3, Losses: 1, Total: 4}
	if got[2] != want {
		t.Fatalf("got %+v, want %+v", got[2], want)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := NewPatternStore()
	r := rand.New(rand.NewPCG(7, 7))
	outcomes := []Outcome{Win, Loss, Draw}
	for i := 0; i < 200; i++ {
		key := []byte("---------")
		key[r.IntN(9)] = 'x'
		key[r.IntN(9)] = 'o'
		s.UpsertOutcome(string(key), r.IntN(9), outcomes[r.IntN(3)])
	}
	s.ReinforceBlock("xx-------", 2, 3)
	s.recordGame(Win)
	s.recordGame(Loss)

	raw, err := s.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	d, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	restored := NewPatternStore()
	restored.Restore(d)

	want, got := s.Snapshot(), restored.Snapshot()
	if len(want.Patterns) != len(got.Patterns) {
		t.Fatalf("pattern count %d != %d", len(got.Patterns), len(want.Patterns))
	}
	for key, moves := range want.Patterns {
		for mv, st := range moves {
			if got.Patterns[key][mv] != st {
				t.Fatalf("%s/%d: got %+v, want %+v", key, mv, got.Patterns[key][mv], st)
			}
		}
	}
	if restored.Totals() != s.Totals() {
		t.Fatalf("totals %+v != %+v", restored.Totals(), s.Totals())
	}
}

func TestDecodeRejectsCorruptData(t *testing.T) {
	for name, raw := range map[string]string{
		"not json":          `{"patterns":`,
		"wrong type":        `{"patterns":[1,2,3]}`,
		"move out of range": `{"patterns":{"---------":{"12":{"wins":1,"total":1}}}}`,
		"negative counter":  `{"patterns":{"---------":{"4":{"wins":-1,"total":0}}}}`,
		"negative games":    `{"patterns":{},"gameCount":-3}`,
	} {
		if _, err := Decode([]byte(raw)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestDecodeEmptyObject(t *testing.T) {
	d, err := Decode([]byte(`{}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.Patterns == nil {
		t.Fatalf("patterns map should be initialised")
	}
}
