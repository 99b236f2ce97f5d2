package tokenizer

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrTokenNotFound is returned when a rank is present in neither the
// mergeable rank table nor the special-token table.
var ErrTokenNotFound = errors.New("tokenizer: token not found")

// ErrInvalidUTF8 is returned by DecodeUTF8 in STRICT mode when the decoded
// bytes are not valid UTF-8.
var ErrInvalidUTF8 = errors.New("tokenizer: invalid utf-8")

// Mode selects how DecodeUTF8 handles invalid byte sequences (spec §4.6).
type Mode int

const (
	// Strict fails with ErrInvalidUTF8 on any invalid sequence.
	Strict Mode = iota
	// Replace substitutes U+FFFD for each invalid sequence.
	Replace
)

// DecodeBytesInto is the C7 component's core operation: it appends the
// concatenated byte-sequences for tokens into dst, looking each rank up in
// the mergeable table first and falling back to the special table.
func (c *Core) DecodeBytesInto(dst *[]byte, tokens []Rank) error {
	buf := *dst
	for _, t := range tokens {
		if c.ranks.AppendBytes(&buf, t) {
			continue
		}
		if b, ok := c.spec.Bytes(t); ok {
			buf = append(buf, b...)
			continue
		}
		*dst = buf
		return fmt.Errorf("decoding token %d: %w", t, ErrTokenNotFound)
	}
	*dst = buf
	return nil
}

// DecodeBytes returns the concatenated byte-sequences for tokens.
func (c *Core) DecodeBytes(tokens []Rank) ([]byte, error) {
	var out []byte
	if err := c.DecodeBytesInto(&out, tokens); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeUTF8 decodes tokens to a string under the given mode.
func (c *Core) DecodeUTF8(tokens []Rank, mode Mode) (string, error) {
	bs, err := c.DecodeBytes(tokens)
	if err != nil {
		return "", err
	}
	switch mode {
	case Strict:
		if !utf8.Valid(bs) {
			return "", fmt.Errorf("decoding tokens: %w", ErrInvalidUTF8)
		}
		return string(bs), nil
	case Replace:
		return strictToValid(bs), nil
	default:
		return "", fmt.Errorf("decoding tokens: unknown mode %d", mode)
	}
}

func strictToValid(bs []byte) string {
	if utf8.Valid(bs) {
		return string(bs)
	}
	out := make([]rune, 0, len(bs))
	for i := 0; i < len(bs); {
		r, size := utf8.DecodeRune(bs[i:])
		out = append(out, r)
		i += size
	}
	return string(out)
}

// DecodeSingleTokenBytes returns the exact byte-sequence for a single rank.
func (c *Core) DecodeSingleTokenBytes(token Rank) ([]byte, error) {
	var buf []byte
	if c.ranks.AppendBytes(&buf, token) {
		return buf, nil
	}
	if b, ok := c.spec.Bytes(token); ok {
		return append([]byte(nil), b...), nil
	}
	return nil, fmt.Errorf("decoding token %d: %w", token, ErrTokenNotFound)
}

// Offset pairs a decoded rune range with its source token.
type Offset struct {
	Token     Rank
	ByteStart int
	ByteEnd   int
}

// DecodeWithOffsets decodes tokens to a string plus, for each token, the
// byte range it occupies in the resulting string — useful for highlighting
// which tokens produced which part of the output.
func (c *Core) DecodeWithOffsets(tokens []Rank, mode Mode) (string, []Offset, error) {
	offsets := make([]Offset, 0, len(tokens))
	var buf []byte
	for _, t := range tokens {
		start := len(buf)
		tb, err := c.DecodeSingleTokenBytes(t)
		if err != nil {
			return "", nil, err
		}
		buf = append(buf, tb...)
		offsets = append(offsets, Offset{Token: t, ByteStart: start, ByteEnd: len(buf)})
	}
	switch mode {
	case Strict:
		if !utf8.Valid(buf) {
			return "", nil, fmt.Errorf("decoding tokens: %w", ErrInvalidUTF8)
		}
		return string(buf), offsets, nil
	case Replace:
		return strictToValid(buf), offsets, nil
	default:
		return "", nil, fmt.Errorf("decoding tokens: unknown mode %d", mode)
	}
}
