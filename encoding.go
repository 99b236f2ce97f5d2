package tiktoken

import (
	"fmt"

	"github.com/go-tiktoken/tiktoken/tokenizer"
)

// Encoding is a named, process-lifetime tokenizer built from a registered
// definition: a rank table, special-token table, and pretokenizer pattern,
// wrapped in the tokenizer package's Core.
type Encoding struct {
	name           string
	core           *tokenizer.Core
	explicitNVocab int
}

// buildEncoding loads a definition's vocabulary and assembles its Core.
func buildEncoding(def definition) (*Encoding, error) {
	pairs, err := def.loadRanks()
	if err != nil {
		return nil, wrapErr(KindUnknownEncoding, err, "loading vocabulary for %q", def.name)
	}
	core, err := tokenizer.NewFromPairs(pairs, def.specials, def.pattern)
	if err != nil {
		return nil, wrapErr(KindUnknownEncoding, err, "constructing encoding %q", def.name)
	}
	if def.explicitNVocab != 0 {
		got := core.Ranks().Len() + core.Specials().Len()
		if got != def.explicitNVocab {
			return nil, newErr(KindUnknownEncoding, "encoding %q: vocabulary size %d does not match explicit n_vocab %d", def.name, got, def.explicitNVocab)
		}
		maxRank := core.Ranks().MaxRank()
		if specialMax, ok := core.Specials().MaxRank(); ok && specialMax > maxRank {
			maxRank = specialMax
		}
		if int(maxRank) != def.explicitNVocab-1 {
			return nil, newErr(KindUnknownEncoding, "encoding %q: max rank %d does not match n_vocab-1 %d", def.name, maxRank, def.explicitNVocab-1)
		}
	}
	return &Encoding{name: def.name, core: core, explicitNVocab: def.explicitNVocab}, nil
}

// Name returns the encoding's registered name.
func (e *Encoding) Name() string { return e.name }

// NVocab returns the vocabulary size: the configured explicit_n_vocab if
// the definition specified one, otherwise the count of mergeable plus
// special tokens actually loaded.
func (e *Encoding) NVocab() int {
	if e.explicitNVocab != 0 {
		return e.explicitNVocab
	}
	return e.core.Ranks().Len() + e.core.Specials().Len()
}

// EOTToken returns the rank of the end-of-text special token.
func (e *Encoding) EOTToken() (Rank, error) {
	r, ok := e.core.Specials().Rank(literalEndOfText)
	if !ok {
		return 0, newErr(KindTokenNotFound, "encoding %q has no end-of-text special token", e.name)
	}
	return r, nil
}

// TokenByteValues returns the byte-sequence for every mergeable rank, in
// ascending rank order as stored by the underlying rank table's sorted
// index (spec's supplemented "miscellaneous interfaces").
func (e *Encoding) TokenByteValues() [][]byte {
	return e.core.Ranks().SortedTokenBytes()
}

// resolveAllowed expands an AllowedSpecial policy into a concrete literal
// set against this encoding's registered specials.
func (e *Encoding) resolveAllowed(allowed AllowedSpecial) map[string]struct{} {
	if allowed.mode == policyAll {
		lits := e.core.Specials().Literals()
		set := make(map[string]struct{}, len(lits))
		for _, l := range lits {
			set[l] = struct{}{}
		}
		return set
	}
	return allowed.set
}

// resolveDisallowed expands a DisallowedSpecial policy, relative to an
// already-resolved allowed set, into a concrete literal set (spec §4.4.2:
// "all specials not explicitly allowed").
func (e *Encoding) resolveDisallowed(allowedSet map[string]struct{}, disallowed DisallowedSpecial) map[string]struct{} {
	if disallowed.mode != policyAll {
		return disallowed.set
	}
	lits := e.core.Specials().Literals()
	set := make(map[string]struct{}, len(lits))
	for _, l := range lits {
		if _, ok := allowedSet[l]; ok {
			continue
		}
		set[l] = struct{}{}
	}
	return set
}

// EncodeOrdinary encodes text, never treating any substring as a special
// token regardless of its content (spec §4.4.1).
func (e *Encoding) EncodeOrdinary(text string) ([]Rank, error) {
	toks, _, err := e.core.EncodeOrdinary(text)
	if err != nil {
		return nil, wrapErr(KindTokenEncodeFailure, err, "encoding ordinary text")
	}
	return toks, nil
}

// Encode encodes text under the given allowed/disallowed special-token
// policy (spec §4.4.2): any literal in the disallowed set found in text
// fails the call; any literal in the allowed set found in text becomes a
// single token; everything else is ordinary-merged.
func (e *Encoding) Encode(text string, allowed AllowedSpecial, disallowed DisallowedSpecial) ([]Rank, error) {
	allowedSet := e.resolveAllowed(allowed)
	disallowedSet := e.resolveDisallowed(allowedSet, disallowed)
	if lit, found := e.core.FindDisallowedSpecial(text, disallowedSet); found {
		return nil, newErr(KindSpecialTokenDisallowed, specialTokenDisallowedMessage(lit))
	}
	toks, _, err := e.core.Encode(text, allowedSet)
	if err != nil {
		return nil, wrapErr(KindTokenEncodeFailure, err, "encoding text")
	}
	return toks, nil
}

func specialTokenDisallowedMessage(lit string) string {
	return fmt.Sprintf(
		"encountered text corresponding to disallowed special token %q; "+
			"pass it to AllowedSpecialSet to allow it, or DisallowedSpecialNone "+
			"(or an explicit DisallowedSpecialSet excluding it) to treat it as ordinary text",
		lit,
	)
}

// EncodeWithUnstable runs Encode under the given allowed-special policy and
// additionally returns the set of plausible completions of the trailing
// unstable region, for speculative/streaming decoding (spec §4.5).
func (e *Encoding) EncodeWithUnstable(text string, allowed AllowedSpecial) (stable []Rank, completions [][]Rank, err error) {
	allowedSet := e.resolveAllowed(allowed)
	stable, completions, uerr := e.core.EncodeWithUnstable(text, allowedSet)
	if uerr != nil {
		return nil, nil, wrapErr(KindTokenEncodeFailure, uerr, "encoding with unstable tail")
	}
	return stable, completions, nil
}

// EncodeSingleToken returns the rank for piece if it is itself exactly one
// token (mergeable or special).
func (e *Encoding) EncodeSingleToken(piece []byte) (Rank, error) {
	r, err := e.core.EncodeSingleToken(piece)
	if err != nil {
		return 0, wrapErr(KindTokenEncodeFailure, err, "encoding %q as a single token", piece)
	}
	return r, nil
}

// DecodeBytes concatenates the byte-sequences for tokens.
func (e *Encoding) DecodeBytes(tokens []Rank) ([]byte, error) {
	bs, err := e.core.DecodeBytes(tokens)
	if err != nil {
		return nil, wrapErr(KindTokenNotFound, err, "decoding tokens")
	}
	return bs, nil
}

// Decode decodes tokens to a string under mode.
func (e *Encoding) Decode(tokens []Rank, mode DecodeMode) (string, error) {
	s, err := e.core.DecodeUTF8(tokens, mode)
	if err != nil {
		if mode == DecodeStrict {
			return "", wrapErr(KindInvalidUTF8, err, "decoding tokens")
		}
		return "", wrapErr(KindTokenNotFound, err, "decoding tokens")
	}
	return s, nil
}

// DecodeWithOffsets decodes tokens and additionally reports, for each
// token, the byte range of the decoded string it produced.
func (e *Encoding) DecodeWithOffsets(tokens []Rank, mode DecodeMode) (string, []tokenizer.Offset, error) {
	s, offsets, err := e.core.DecodeWithOffsets(tokens, mode)
	if err != nil {
		if mode == DecodeStrict {
			return "", nil, wrapErr(KindInvalidUTF8, err, "decoding tokens")
		}
		return "", nil, wrapErr(KindTokenNotFound, err, "decoding tokens")
	}
	return s, offsets, nil
}

// DecodeSingleTokenBytes returns the exact byte-sequence for a single rank.
func (e *Encoding) DecodeSingleTokenBytes(token Rank) ([]byte, error) {
	b, err := e.core.DecodeSingleTokenBytes(token)
	if err != nil {
		return nil, wrapErr(KindTokenNotFound, err, "decoding token %d", token)
	}
	return b, nil
}
