package tokenizer

import "testing"

func TestNewRankTableRejectsMissingByte(t *testing.T) {
	pairs := [][2]any{
		{[]byte{0x00}, Rank(0)},
		{[]byte{0x01}, Rank(1)},
	}
	if _, err := NewRankTable(pairs); err == nil {
		t.Fatalf("expected error for incomplete single-byte coverage")
	}
}

func TestRankTableRankAndAppendBytes(t *testing.T) {
	rt, err := NewRankTable(buildTestVocab([]string{"lo"}))
	if err != nil {
		t.Fatalf("NewRankTable: %v", err)
	}
	defer rt.Close()

	r, ok := rt.Rank("lo")
	if !ok || r != 256 {
		t.Fatalf("Rank(lo) = (%d, %v), want (256, true)", r, ok)
	}

	var buf []byte
	if ok := rt.AppendBytes(&buf, 256); !ok {
		t.Fatalf("AppendBytes(256) reported missing rank")
	}
	if string(buf) != "lo" {
		t.Fatalf("AppendBytes(256) = %q, want %q", buf, "lo")
	}
	if ok := rt.AppendBytes(&buf, 99999); ok {
		t.Fatalf("AppendBytes reported success for unknown rank")
	}
}

func TestRankTableMaxRankAndLen(t *testing.T) {
	rt, err := NewRankTable(buildTestVocab([]string{"lo", "low"}))
	if err != nil {
		t.Fatalf("NewRankTable: %v", err)
	}
	defer rt.Close()
	if rt.MaxRank() != 257 {
		t.Fatalf("MaxRank() = %d, want 257", rt.MaxRank())
	}
	if rt.Len() != 258 {
		t.Fatalf("Len() = %d, want 258", rt.Len())
	}
}

func TestRankTableSortedTokenBytesIsSorted(t *testing.T) {
	rt, err := NewRankTable(buildTestVocab([]string{"lo", "low", "er"}))
	if err != nil {
		t.Fatalf("NewRankTable: %v", err)
	}
	defer rt.Close()
	sorted := rt.SortedTokenBytes()
	for i := 1; i < len(sorted); i++ {
		if string(sorted[i-1]) > string(sorted[i]) {
			t.Fatalf("SortedTokenBytes not sorted at index %d: %q > %q", i, sorted[i-1], sorted[i])
		}
	}
	if len(sorted) != rt.Len() {
		t.Fatalf("SortedTokenBytes length = %d, want %d", len(sorted), rt.Len())
	}
}
