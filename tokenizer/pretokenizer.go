package tokenizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

// Pretokenizer is the C3 component: a compiled Unicode regex that splits
// text into maximal, non-overlapping fragments, each merged independently
// by the BPE merger (C4). The named encodings' patterns require Unicode
// property classes, negated classes, lookahead, and case-insensitive
// groups (spec §4.2) — features a fixed-character-class regex library
// cannot express, so this is built on github.com/dlclark/regexp2, the
// backtracking, .NET-style engine the Go tiktoken ports in this codebase's
// lineage use (ardanlabs/foundation/tiktoken, j178/tiktoken-go,
// lancekrogers/tokenizer/bpe).
type Pretokenizer struct {
	pat *regexp2.Regexp
}

// NewPretokenizer compiles a pretokenization pattern.
func NewPretokenizer(patStr string) (*Pretokenizer, error) {
	re, err := regexp2.Compile(patStr, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("compiling pretokenizer pattern: %w", err)
	}
	return &Pretokenizer{pat: re}, nil
}

// Split returns the text's fragments in left-to-right order. Matching is
// greedy and non-overlapping; the fragments cover the entire input.
func (p *Pretokenizer) Split(text string) ([]string, error) {
	var frags []string
	m, err := p.pat.FindStringMatch(text)
	if err != nil {
		return nil, fmt.Errorf("pretokenizer match: %w", err)
	}
	for m != nil {
		frags = append(frags, m.String())
		m, err = p.pat.FindNextMatch(m)
		if err != nil {
			return nil, fmt.Errorf("pretokenizer match: %w", err)
		}
	}
	return frags, nil
}

// specialRegex wraps the dynamic alternation pattern over special-token
// literals used both to detect disallowed specials before encoding and to
// locate allowed specials inside text during encoding (spec §4.2).
type specialRegex struct {
	pat *regexp2.Regexp
}

// buildSpecialRegex compiles `(lit1|lit2|...)` with every literal
// regexp-escaped. An empty literal set compiles a pattern that never
// matches.
func buildSpecialRegex(literals []string) (*specialRegex, error) {
	if len(literals) == 0 {
		return &specialRegex{}, nil
	}
	escaped := make([]string, len(literals))
	for i, lit := range literals {
		escaped[i] = regexp.QuoteMeta(lit)
	}
	re, err := regexp2.Compile(strings.Join(escaped, "|"), regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("compiling special-token regex: %w", err)
	}
	return &specialRegex{pat: re}, nil
}

// specialMatch is one match of the special-token alternation, with the
// range expressed in rune offsets: regexp2 measures Index/Length in runes,
// not bytes, so every caller that needs to slice text consistently with
// these offsets must do so over []rune(text), matching the cutRunes/
// textRunes pattern used throughout this codebase's tiktoken-port lineage
// (ardanlabs/foundation/tiktoken, lancekrogers/tokenizer/bpe).
type specialMatch struct {
	literal    string
	start, end int
}

// findAllMatches returns every non-overlapping match of the special-token
// alternation in text, in left-to-right order, with rune-offset ranges. A
// nil/empty regex (no special tokens registered) yields no matches.
func (s *specialRegex) findAllMatches(text string) ([]specialMatch, error) {
	if s.pat == nil {
		return nil, nil
	}
	var out []specialMatch
	m, err := s.pat.FindStringMatch(text)
	if err != nil {
		return nil, fmt.Errorf("special-token match: %w", err)
	}
	for m != nil {
		out = append(out, specialMatch{literal: m.String(), start: m.Index, end: m.Index + m.Length})
		m, err = s.pat.FindNextMatch(m)
		if err != nil {
			return nil, fmt.Errorf("special-token match: %w", err)
		}
	}
	return out, nil
}

// findAny reports whether any literal matches anywhere in text (used for
// the disallowed-special precheck, where only presence matters).
func (s *specialRegex) findAny(text string) (lit string, ok bool) {
	if s.pat == nil {
		return "", false
	}
	m, err := s.pat.FindStringMatch(text)
	if err != nil || m == nil {
		return "", false
	}
	return m.String(), true
}

// cutRunes returns the substring of runes covering [start,end), clamped to
// runes' bounds.
func cutRunes(runes []rune, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}
