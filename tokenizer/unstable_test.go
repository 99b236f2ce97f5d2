package tokenizer

import (
	"sort"
	"testing"
)

func newUnstableTestCore(t *testing.T) *Core {
	t.Helper()
	rt, err := NewRankTable(buildTestVocab([]string{"ab", "abc", "abcd", "abx"}))
	if err != nil {
		t.Fatalf("NewRankTable: %v", err)
	}
	pre, err := NewPretokenizer(`\S+|\s+`)
	if err != nil {
		t.Fatalf("NewPretokenizer: %v", err)
	}
	return NewCore(rt, NewSpecialTable(nil), pre)
}

func ranksToStrings(seqs [][]Rank) []string {
	out := make([]string, 0, len(seqs))
	for _, s := range seqs {
		buf := make([]byte, 0, len(s)*4)
		for _, r := range s {
			buf = append(buf, byte(r>>24), byte(r>>16), byte(r>>8), byte(r), ',')
		}
		out = append(out, string(buf))
	}
	sort.Strings(out)
	return out
}

func TestEncodeWithUnstablePendingPrefix(t *testing.T) {
	core := newUnstableTestCore(t)
	stable, completions, err := core.EncodeWithUnstable("ab", nil)
	if err != nil {
		t.Fatalf("EncodeWithUnstable: %v", err)
	}
	if len(stable) != 0 {
		t.Fatalf("stable = %v, want empty (entire fragment is unstable)", stable)
	}
	want := [][]Rank{{256}, {257}, {258}, {259}, {'a', 'b'}}
	gotStrs, wantStrs := ranksToStrings(completions), ranksToStrings(want)
	if len(gotStrs) != len(wantStrs) {
		t.Fatalf("completions = %v, want %v", completions, want)
	}
	for i := range gotStrs {
		if gotStrs[i] != wantStrs[i] {
			t.Fatalf("completions = %v, want %v", completions, want)
		}
	}
}

func TestEncodeWithUnstableStableWhenNoOverlap(t *testing.T) {
	core := newUnstableTestCore(t)
	// "zz" has no vocabulary entry longer than itself sharing its prefix,
	// so nothing should be popped into the unstable region.
	stable, completions, err := core.EncodeWithUnstable("zz", nil)
	if err != nil {
		t.Fatalf("EncodeWithUnstable: %v", err)
	}
	if len(completions) != 0 {
		t.Fatalf("expected no completions, got %v", completions)
	}
	if len(stable) != 2 {
		t.Fatalf("expected both single-byte tokens to remain stable, got %v", stable)
	}
}

func TestPopUnstableSuffixRespectsLastPieceBoundary(t *testing.T) {
	core := newUnstableTestCore(t)
	// Two fragments encoded back to back: "xy" (stable, unrelated bytes)
	// then "ab" (the unstable tail). Only the second fragment's tokens may
	// be popped.
	tokens, lastLen, err := core.EncodeOrdinary("xy ab")
	if err != nil {
		t.Fatalf("EncodeOrdinary: %v", err)
	}
	stable, unstableBytes := core.popUnstableSuffix(tokens, lastLen)
	if string(unstableBytes) != "ab" {
		t.Fatalf("unstableBytes = %q, want %q", unstableBytes, "ab")
	}
	if len(stable) != len(tokens)-1 {
		t.Fatalf("stable should retain every token except the popped \"ab\": got %v from %v", stable, tokens)
	}
}
