package tiktoken

import (
	"errors"
	"fmt"
)

// Kind identifies which category of failure an Error represents (spec §7).
// IoError and NetworkError are kinds the external vocabulary loader can
// produce; they are surfaced unwrapped via the loader's own errors rather
// than re-kinded here.
type Kind int

const (
	// KindUnknownEncoding means a registry lookup by name failed.
	KindUnknownEncoding Kind = iota
	// KindUnknownModel means model-name-to-encoding resolution failed.
	KindUnknownModel
	// KindSpecialTokenDisallowed means text contained a special-token
	// literal present in the disallowed set.
	KindSpecialTokenDisallowed
	// KindTokenNotFound means a rank was absent from both the mergeable
	// and special-token tables during decode.
	KindTokenNotFound
	// KindTokenEncodeFailure means a byte-sequence could not be reduced to
	// a single token by EncodeSingleToken.
	KindTokenEncodeFailure
	// KindInvalidUTF8 means STRICT-mode decoding produced invalid UTF-8.
	KindInvalidUTF8
)

func (k Kind) String() string {
	switch k {
	case KindUnknownEncoding:
		return "UnknownEncoding"
	case KindUnknownModel:
		return "UnknownModel"
	case KindSpecialTokenDisallowed:
		return "SpecialTokenDisallowed"
	case KindTokenNotFound:
		return "TokenNotFound"
	case KindTokenEncodeFailure:
		return "TokenEncodeFailure"
	case KindInvalidUTF8:
		return "InvalidUtf8"
	default:
		return "Unknown"
	}
}

// Error is the typed error every public operation in this package returns
// for its own failures (as opposed to the external loader's I/O errors).
type Error struct {
	Kind    Kind
	Message string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("tiktoken: %s: %s: %v", e.Kind, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("tiktoken: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, tiktoken.ErrKind(tiktoken.KindTokenNotFound)).
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Kind == e.Kind
	}
	return false
}

// ErrKind builds a zero-message *Error usable as an errors.Is target, e.g.
// errors.Is(err, tiktoken.ErrKind(tiktoken.KindUnknownEncoding)).
func ErrKind(k Kind) *Error { return &Error{Kind: k} }

func newErr(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

func wrapErr(k Kind, wrapped error, format string, args ...any) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...), Wrapped: wrapped}
}
