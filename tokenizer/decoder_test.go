package tokenizer

import (
	"errors"
	"testing"
)

func newDecodeTestCore(t *testing.T) *Core {
	t.Helper()
	rt, err := NewRankTable(buildTestVocab([]string{"lo", "low"}))
	if err != nil {
		t.Fatalf("NewRankTable: %v", err)
	}
	pre, err := NewPretokenizer(`\S+|\s+`)
	if err != nil {
		t.Fatalf("NewPretokenizer: %v", err)
	}
	st := NewSpecialTable(map[string]Rank{LiteralEndOfText: 9999})
	return NewCore(rt, st, pre)
}

func TestDecodeBytesConcatenatesMergeableAndSpecial(t *testing.T) {
	core := newDecodeTestCore(t)
	got, err := core.DecodeBytes([]Rank{257, 9999, 'w'})
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if string(got) != "low"+LiteralEndOfText+"w" {
		t.Fatalf("DecodeBytes = %q", got)
	}
}

func TestDecodeBytesUnknownRankIsError(t *testing.T) {
	core := newDecodeTestCore(t)
	if _, err := core.DecodeBytes([]Rank{424242}); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestDecodeUTF8StrictRejectsInvalidBytes(t *testing.T) {
	core := newDecodeTestCore(t)
	// Rank 0x80 alone is a lone continuation byte: invalid UTF-8.
	if _, err := core.DecodeUTF8([]Rank{0x80}, Strict); !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestDecodeUTF8ReplaceSubstitutes(t *testing.T) {
	core := newDecodeTestCore(t)
	s, err := core.DecodeUTF8([]Rank{0x80}, Replace)
	if err != nil {
		t.Fatalf("DecodeUTF8: %v", err)
	}
	if s != "�" {
		t.Fatalf("DecodeUTF8 Replace = %q, want U+FFFD", s)
	}
}

func TestDecodeSingleTokenBytes(t *testing.T) {
	core := newDecodeTestCore(t)
	b, err := core.DecodeSingleTokenBytes(256)
	if err != nil {
		t.Fatalf("DecodeSingleTokenBytes: %v", err)
	}
	if string(b) != "lo" {
		t.Fatalf("DecodeSingleTokenBytes(256) = %q, want %q", b, "lo")
	}
	if _, err := core.DecodeSingleTokenBytes(424242); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestDecodeWithOffsets(t *testing.T) {
	core := newDecodeTestCore(t)
	s, offsets, err := core.DecodeWithOffsets([]Rank{257, 'w'}, Strict)
	if err != nil {
		t.Fatalf("DecodeWithOffsets: %v", err)
	}
	if s != "loww" {
		t.Fatalf("decoded string = %q, want %q", s, "loww")
	}
	if len(offsets) != 2 || offsets[0].ByteStart != 0 || offsets[0].ByteEnd != 3 || offsets[1].ByteStart != 3 || offsets[1].ByteEnd != 4 {
		t.Fatalf("unexpected offsets: %+v", offsets)
	}
}
