package tokenizer

import (
	"bytes"
	"sort"
)

// EncodeWithUnstable is the C6 component (spec §4.5): it runs the ordinary
// encode, then pops trailing tokens whose decoded bytes could still merge
// differently once more text arrives, returning the stable prefix plus the
// set of plausible completions of the unstable tail.
func (c *Core) EncodeWithUnstable(text string, allowed map[string]struct{}) (stable []Rank, completions [][]Rank, err error) {
	tokens, lastPieceLen, err := c.Encode(text, allowed)
	if err != nil {
		return nil, nil, err
	}
	if lastPieceLen == 0 {
		return tokens, nil, nil
	}

	stableTokens, unstableBytes := c.popUnstableSuffix(tokens, lastPieceLen)
	if len(unstableBytes) == 0 {
		return stableTokens, nil, nil
	}

	seen := make(map[string]struct{})
	var out [][]Rank
	add := func(seq []Rank) {
		key := string(ranksKey(seq))
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, seq)
	}

	for _, tb := range c.rangeWithPrefix(unstableBytes) {
		r, ok := c.ranks.Rank(string(tb))
		if !ok {
			continue
		}
		add([]Rank{r})
	}

	for k := 1; k < len(unstableBytes); k++ {
		r1, ok1 := c.ranks.Rank(string(unstableBytes[:k]))
		if !ok1 {
			continue
		}
		r2, ok2 := c.ranks.Rank(string(unstableBytes[k:]))
		if !ok2 {
			continue
		}
		add([]Rank{r1, r2})
	}

	return stableTokens, out, nil
}

// popUnstableSuffix pops trailing tokens from the last pretokenizer
// fragment (lastPieceLen of them, at most) while the concatenation of their
// decoded bytes remains a proper prefix of some longer entry in
// sortedTokenBytes — meaning a byte arriving later could still cause a
// different merge.
func (c *Core) popUnstableSuffix(tokens []Rank, lastPieceLen int) ([]Rank, []byte) {
	if lastPieceLen > len(tokens) {
		lastPieceLen = len(tokens)
	}
	i := len(tokens)
	floor := len(tokens) - lastPieceLen
	var unstable []byte
	for i > floor {
		tb, ok := c.tokenBytes(tokens[i-1])
		if !ok {
			break
		}
		candidate := append(append([]byte{}, tb...), unstable...)
		if !c.hasLongerPrefixMatch(candidate) {
			break
		}
		unstable = candidate
		i--
	}
	return tokens[:i], unstable
}

// tokenBytes returns the byte-sequence for a mergeable or special rank.
func (c *Core) tokenBytes(r Rank) ([]byte, bool) {
	var buf []byte
	if c.ranks.AppendBytes(&buf, r) {
		return buf, true
	}
	if b, ok := c.spec.Bytes(r); ok {
		return b, true
	}
	return nil, false
}

// hasLongerPrefixMatch reports whether sortedTokenBytes contains an entry
// strictly longer than b that begins with b.
func (c *Core) hasLongerPrefixMatch(b []byte) bool {
	sorted := c.ranks.SortedTokenBytes()
	i := sort.Search(len(sorted), func(i int) bool { return bytes.Compare(sorted[i], b) >= 0 })
	for ; i < len(sorted) && bytes.HasPrefix(sorted[i], b); i++ {
		if len(sorted[i]) > len(b) {
			return true
		}
	}
	return false
}

// rangeWithPrefix returns every sortedTokenBytes entry that begins with
// prefix, located via binary search for the lower bound then a linear walk
// while the prefix still matches (spec §4.5 step 3).
func (c *Core) rangeWithPrefix(prefix []byte) [][]byte {
	sorted := c.ranks.SortedTokenBytes()
	i := sort.Search(len(sorted), func(i int) bool { return bytes.Compare(sorted[i], prefix) >= 0 })
	var out [][]byte
	for ; i < len(sorted) && bytes.HasPrefix(sorted[i], prefix); i++ {
		out = append(out, sorted[i])
	}
	return out
}

func ranksKey(seq []Rank) []byte {
	buf := make([]byte, 0, len(seq)*4)
	for _, r := range seq {
		buf = append(buf, byte(r>>24), byte(r>>16), byte(r>>8), byte(r))
	}
	return buf
}
