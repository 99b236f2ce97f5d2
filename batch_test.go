package tiktoken

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestEncodeOrdinaryBatchMatchesSequential(t *testing.T) {
	e := newTestEncoding(t)
	texts := []string{"low", "lo lo low", "tides", "", "low low low"}
	got, err := e.EncodeOrdinaryBatch(texts)
	if err != nil {
		t.Fatalf("EncodeOrdinaryBatch: %v", err)
	}
	for i, text := range texts {
		want, err := e.EncodeOrdinary(text)
		if err != nil {
			t.Fatalf("EncodeOrdinary(%d): %v", i, err)
		}
		if !reflect.DeepEqual(got[i], want) {
			t.Fatalf("batch[%d] = %v, want %v", i, got[i], want)
		}
	}
}

func TestEncodeBatchFirstErrorWins(t *testing.T) {
	e := newTestEncoding(t)
	texts := []string{"low", literalEndOfText, "tides"}
	_, err := e.EncodeBatch(texts, AllowedSpecialNone, DisallowedSpecialAll)
	if !errors.Is(err, ErrKind(KindSpecialTokenDisallowed)) {
		t.Fatalf("expected KindSpecialTokenDisallowed from the batch, got %v", err)
	}
}

// TestEncodeBatchFirstErrorWinsByIndexNotArrival fails two items at once
// (indices 0 and 3) so the batch must resolve to the lower-index failure
// regardless of which goroutine finishes first.
func TestEncodeBatchFirstErrorWinsByIndexNotArrival(t *testing.T) {
	e := newTestEncoding(t)
	texts := []string{literalFimPrefix, "low", "tides", literalEndOfText, "lo"}
	_, err := e.EncodeBatch(texts, AllowedSpecialNone, DisallowedSpecialAll)
	if !errors.Is(err, ErrKind(KindSpecialTokenDisallowed)) {
		t.Fatalf("expected KindSpecialTokenDisallowed from the batch, got %v", err)
	}
	if !strings.Contains(err.Error(), literalFimPrefix) {
		t.Fatalf("expected the index-0 failure %q to win, got %v", literalFimPrefix, err)
	}
}

func TestDecodeTokensBytesRoundTripsBatch(t *testing.T) {
	e := newTestEncoding(t)
	texts := []string{"low", "lo", "tides and low"}
	encoded, err := e.EncodeOrdinaryBatch(texts)
	if err != nil {
		t.Fatalf("EncodeOrdinaryBatch: %v", err)
	}
	decoded, err := e.DecodeTokensBytes(encoded)
	if err != nil {
		t.Fatalf("DecodeTokensBytes: %v", err)
	}
	for i, text := range texts {
		if string(decoded[i]) != text {
			t.Fatalf("decoded[%d] = %q, want %q", i, decoded[i], text)
		}
	}
}
