package tokenizer

import (
	"fmt"
	"sync"
)

// Core is the C4/C5 component: the byte-pair merger and the encoder built on
// top of a RankTable, a SpecialTable, and a Pretokenizer. Resolution of
// allowed/disallowed special-token policy (spec §4.4.2) happens one layer up,
// in the root package's Encoding; Core only ever sees an already-resolved set
// of literals that may be matched as specials for a given call.
type Core struct {
	ranks *RankTable
	spec  *SpecialTable
	pre   *Pretokenizer

	partsPool sync.Pool
	tokenPool sync.Pool
}

// NewCore assembles the three immutable tables into a ready-to-use Core.
func NewCore(ranks *RankTable, spec *SpecialTable, pre *Pretokenizer) *Core {
	return &Core{
		ranks: ranks,
		spec:  spec,
		pre:   pre,
		partsPool: sync.Pool{New: func() any { b := make([]part, 0, 64); return &b }},
		tokenPool: sync.Pool{New: func() any { b := make([]Rank, 0, 32); return &b }},
	}
}

// Ranks returns the underlying rank table (used by the root package for
// TokenByteValues/NVocab/EOTToken and by the decoder).
func (c *Core) Ranks() *RankTable { return c.ranks }

// Specials returns the underlying special-token table.
func (c *Core) Specials() *SpecialTable { return c.spec }

// FindDisallowedSpecial scans text for the first occurrence of any literal
// in disallowed, used for the precheck in spec §4.4.2 step 2. An empty set
// never matches.
func (c *Core) FindDisallowedSpecial(text string, disallowed map[string]struct{}) (string, bool) {
	if len(disallowed) == 0 {
		return "", false
	}
	re, err := buildSpecialRegex(setKeys(disallowed))
	if err != nil {
		return "", false
	}
	return re.findAny(text)
}

// EncodeOrdinary pretokenizes and merges text without ever treating any
// substring as a special token (spec §4.4.1).
func (c *Core) EncodeOrdinary(text string) ([]Rank, int, error) {
	frags, err := c.pre.Split(text)
	if err != nil {
		return nil, 0, err
	}
	var out []Rank
	lastLen := 0
	for _, frag := range frags {
		lastLen = c.encodeFragment(frag, &out)
	}
	return out, lastLen, nil
}

// Encode pretokenizes and merges text, additionally recognizing any literal
// in allowed as a directly-emitted special token wherever it occurs in text
// (spec §4.4.2 step 3). A nil/empty allowed set behaves like EncodeOrdinary.
func (c *Core) Encode(text string, allowed map[string]struct{}) ([]Rank, int, error) {
	if len(allowed) == 0 {
		return c.EncodeOrdinary(text)
	}
	re, err := buildSpecialRegex(setKeys(allowed))
	if err != nil {
		return nil, 0, err
	}
	matches, err := re.findAllMatches(text)
	if err != nil {
		return nil, 0, err
	}
	runes := []rune(text)
	var out []Rank
	lastLen := 0
	pos := 0 // rune offset of the unconsumed remainder
	for _, m := range matches {
		if m.start > pos {
			frags, err := c.pre.Split(cutRunes(runes, pos, m.start))
			if err != nil {
				return nil, 0, err
			}
			for _, frag := range frags {
				lastLen = c.encodeFragment(frag, &out)
			}
		}
		rank, ok := c.spec.Rank(m.literal)
		if !ok {
			continue
		}
		out = append(out, rank)
		lastLen = 0
		pos = m.end
	}
	if pos < len(runes) {
		frags, err := c.pre.Split(cutRunes(runes, pos, len(runes)))
		if err != nil {
			return nil, 0, err
		}
		for _, frag := range frags {
			lastLen = c.encodeFragment(frag, &out)
		}
	}
	return out, lastLen, nil
}

// encodeFragment merges one pretokenizer fragment (never containing a
// special-token match) and appends its tokens to out, returning the number
// of tokens the fragment produced.
func (c *Core) encodeFragment(frag string, out *[]Rank) int {
	if id, ok := c.ranks.Rank(frag); ok {
		*out = append(*out, id)
		return 1
	}
	toks, release := c.bytePairEncode(frag)
	*out = append(*out, toks...)
	n := len(toks)
	release()
	return n
}

// bytePairEncode merges a single fragment's bytes down to its final token
// sequence via bytePairMerge, then looks up each resulting piece's rank.
func (c *Core) bytePairEncode(piece string) ([]Rank, func()) {
	if len(piece) == 1 {
		buf, release := c.acquireTokens(1)
		r, _ := c.ranks.Rank(piece)
		buf = append(buf[:0], r)
		return buf, release
	}
	parts, releaseParts := c.bytePairMerge(piece)
	toks, releaseTokens := c.acquireTokens(len(parts))
	toks = toks[:0]
	for w := 0; w+1 < len(parts); w++ {
		r, _ := c.ranks.Rank(piece[parts[w].start:parts[w+1].start])
		toks = append(toks, r)
	}
	release := func() {
		releaseParts()
		releaseTokens()
	}
	return toks, release
}

// part is one boundary of the working partition during a merge: start is
// the byte offset of the boundary within piece, rank is the rank of the
// pair (parts[i].start, parts[i+2].start) if that pair is still mergeable,
// or ^uint32(0) otherwise. This is the teacher's linked-list-via-slice
// representation of the BPE merge state.
type part struct {
	start int
	rank  Rank
}

const noRank = ^Rank(0)

func (c *Core) getRank(piece string, parts []part, i int) Rank {
	if i+3 < len(parts) {
		if r, ok := c.ranks.Rank(piece[parts[i].start:parts[i+3].start]); ok {
			return r
		}
	}
	return noRank
}

// bytePairMerge runs the greedy, leftmost-tie, lowest-rank-first merge loop
// (spec §4.3) over piece's bytes, returning the final partition boundaries.
func (c *Core) bytePairMerge(piece string) ([]part, func()) {
	parts, release := c.acquireParts(len(piece) + 2)
	parts = parts[:0]
	minIdx := -1
	minRank := noRank
	for i := 0; i < len(piece)-1; i++ {
		r, ok := c.ranks.Rank(piece[i : i+2])
		if !ok {
			r = noRank
		}
		if r < minRank {
			minRank, minIdx = r, i
		}
		parts = append(parts, part{start: i, rank: r})
	}
	parts = append(parts, part{start: len(piece) - 1, rank: noRank})
	parts = append(parts, part{start: len(piece), rank: noRank})

	for minRank != noRank {
		i := minIdx
		if i > 0 {
			parts[i-1].rank = c.getRank(piece, parts, i-1)
		}
		parts[i].rank = c.getRank(piece, parts, i)
		parts = append(parts[:i+1], parts[i+2:]...)

		minIdx, minRank = -1, noRank
		for j := 0; j < len(parts)-1; j++ {
			if parts[j].rank < minRank {
				minRank, minIdx = parts[j].rank, j
			}
		}
	}
	return parts, release
}

func (c *Core) acquireParts(capHint int) ([]part, func()) {
	p := c.partsPool.Get().(*[]part)
	if cap(*p) < capHint {
		buf := make([]part, 0, capHint)
		p = &buf
	} else {
		*p = (*p)[:0]
	}
	release := func() {
		if cap(*p) > 1<<12 {
			return
		}
		*p = (*p)[:0]
		c.partsPool.Put(p)
	}
	return *p, release
}

func (c *Core) acquireTokens(capHint int) ([]Rank, func()) {
	p := c.tokenPool.Get().(*[]Rank)
	if cap(*p) < capHint {
		buf := make([]Rank, 0, capHint)
		p = &buf
	} else {
		*p = (*p)[:0]
	}
	release := func() {
		if cap(*p) > 1<<12 {
			return
		}
		*p = (*p)[:0]
		c.tokenPool.Put(p)
	}
	return *p, release
}

func setKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

var errEncodeSingleToken = fmt.Errorf("tokenizer: piece does not encode to a single token")

// EncodeSingleToken returns the rank for piece if piece is itself a single
// mergeable token (spec's `encode_single_token`), without running the
// merge loop.
func (c *Core) EncodeSingleToken(piece []byte) (Rank, error) {
	if r, ok := c.ranks.Rank(string(piece)); ok {
		return r, nil
	}
	if r, ok := c.spec.Rank(string(piece)); ok {
		return r, nil
	}
	return 0, errEncodeSingleToken
}
