package tiktoken

import "github.com/go-tiktoken/tiktoken/tokenizer"

// Rank is a token identifier; lower ranks merge first among mergeable
// tokens (see tokenizer.Rank).
type Rank = tokenizer.Rank

type specialPolicyMode int

const (
	policyAll specialPolicyMode = iota
	policySet
)

// AllowedSpecial selects which special-token literals Encode may emit
// directly rather than rejecting or merging as ordinary text (spec
// §4.4.2). The zero value is the empty set ("none").
type AllowedSpecial struct {
	mode specialPolicyMode
	set  map[string]struct{}
}

// AllowedSpecialAll permits every special token registered on the encoding.
var AllowedSpecialAll = AllowedSpecial{mode: policyAll}

// AllowedSpecialNone permits no special tokens: every special-token literal
// found in text is treated as ordinary bytes.
var AllowedSpecialNone = AllowedSpecial{mode: policySet, set: map[string]struct{}{}}

// AllowedSpecialSet permits exactly the given literals.
func AllowedSpecialSet(literals ...string) AllowedSpecial {
	set := make(map[string]struct{}, len(literals))
	for _, l := range literals {
		set[l] = struct{}{}
	}
	return AllowedSpecial{mode: policySet, set: set}
}

// DisallowedSpecial selects which special-token literals must never appear
// as ordinary text in the input, causing Encode to fail if found (spec
// §4.4.2). The zero value is the empty set ("none").
type DisallowedSpecial struct {
	mode specialPolicyMode
	set  map[string]struct{}
}

// DisallowedSpecialAll disallows every special token not already permitted
// by the call's AllowedSpecial — the default tiktoken safety posture.
var DisallowedSpecialAll = DisallowedSpecial{mode: policyAll}

// DisallowedSpecialNone disables the disallowed-special precheck entirely.
var DisallowedSpecialNone = DisallowedSpecial{mode: policySet, set: map[string]struct{}{}}

// DisallowedSpecialSet disallows exactly the given literals.
func DisallowedSpecialSet(literals ...string) DisallowedSpecial {
	set := make(map[string]struct{}, len(literals))
	for _, l := range literals {
		set[l] = struct{}{}
	}
	return DisallowedSpecial{mode: policySet, set: set}
}

// DecodeMode selects how Decode handles invalid UTF-8 byte sequences.
type DecodeMode = tokenizer.Mode

const (
	// DecodeStrict fails with an InvalidUtf8 error on invalid sequences.
	DecodeStrict = tokenizer.Strict
	// DecodeReplace substitutes U+FFFD for each invalid sequence.
	DecodeReplace = tokenizer.Replace
)
