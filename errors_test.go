package tiktoken

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorIsComparesKindOnly(t *testing.T) {
	err := newErr(KindTokenNotFound, "token %d missing", 42)
	if !errors.Is(err, ErrKind(KindTokenNotFound)) {
		t.Fatalf("errors.Is should match on Kind alone")
	}
	if errors.Is(err, ErrKind(KindUnknownModel)) {
		t.Fatalf("errors.Is matched the wrong Kind")
	}
}

func TestWrapErrUnwraps(t *testing.T) {
	inner := fmt.Errorf("boom")
	err := wrapErr(KindTokenEncodeFailure, inner, "encoding failed")
	if !errors.Is(err, inner) {
		t.Fatalf("wrapErr must preserve Unwrap chain to the wrapped error")
	}
}

func TestKindString(t *testing.T) {
	if KindSpecialTokenDisallowed.String() != "SpecialTokenDisallowed" {
		t.Fatalf("unexpected Kind.String(): %q", KindSpecialTokenDisallowed.String())
	}
}
