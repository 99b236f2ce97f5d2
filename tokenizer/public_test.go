package tokenizer

import "testing"

func TestNewFromPairsRejectsSpecialRankCollision(t *testing.T) {
	pairs := buildTestVocab([]string{"lo", "low"})
	specials := map[string]Rank{LiteralEndOfText: 257} // collides with "low"
	if _, err := NewFromPairs(pairs, specials, `\S+|\s+`); err == nil {
		t.Fatalf("expected an error when a special-token rank collides with a mergeable rank")
	}
}

func TestNewFromPairsAllowsDisjointRanks(t *testing.T) {
	pairs := buildTestVocab([]string{"lo", "low"})
	specials := map[string]Rank{LiteralEndOfText: 258}
	core, err := NewFromPairs(pairs, specials, `\S+|\s+`)
	if err != nil {
		t.Fatalf("NewFromPairs: %v", err)
	}
	defer core.Ranks().Close()
	if r, ok := core.Specials().Rank(LiteralEndOfText); !ok || r != 258 {
		t.Fatalf("Specials().Rank(LiteralEndOfText) = (%d, %v), want (258, true)", r, ok)
	}
}

func TestSpecialTableMaxRank(t *testing.T) {
	st := NewSpecialTable(map[string]Rank{
		LiteralEndOfText: 50256,
		LiteralFimPrefix: 50281,
	})
	max, ok := st.MaxRank()
	if !ok || max != 50281 {
		t.Fatalf("MaxRank() = (%d, %v), want (50281, true)", max, ok)
	}
}

func TestSpecialTableMaxRankEmpty(t *testing.T) {
	st := NewSpecialTable(nil)
	if _, ok := st.MaxRank(); ok {
		t.Fatalf("MaxRank() on an empty table should report ok=false")
	}
}
