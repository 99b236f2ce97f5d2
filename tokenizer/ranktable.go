package tokenizer

import (
	"bytes"
	"fmt"
	"sort"
)

// Rank identifies both a token and, for mergeable tokens, its merge
// priority (lower rank merges first).
type Rank = uint32

// RankTable is the immutable C1 component: a bijection between mergeable
// byte-sequences and ranks, plus the lexicographically sorted byte-sequence
// index used by the unstable encoder (C6) for prefix search.
type RankTable struct {
	enc              *rankMap
	dec              tokenStore
	sortedTokenBytes [][]byte
	maxRank          Rank
}

// NewRankTable builds a RankTable from encoder pairs (byte-sequence, rank).
// It fails if any byte 0x00-0xFF is missing from the vocabulary, which the
// BPE merger (C4) relies on as a termination guarantee.
func NewRankTable(pairs [][2]any) (*RankTable, error) {
	entries := make(map[string]Rank, len(pairs))
	var maxRank Rank
	for _, p := range pairs {
		b, _ := p[0].([]byte)
		r, _ := p[1].(Rank)
		entries[string(b)] = r
		if r > maxRank {
			maxRank = r
		}
	}
	for b := 0; b < 256; b++ {
		if _, ok := entries[string([]byte{byte(b)})]; !ok {
			return nil, fmt.Errorf("rank table: missing single-byte token 0x%02x", b)
		}
	}
	dec, err := newTokenStore(pairs)
	if err != nil {
		return nil, fmt.Errorf("rank table: %w", err)
	}
	sorted := make([][]byte, 0, len(pairs))
	for _, p := range pairs {
		b, _ := p[0].([]byte)
		sorted = append(sorted, b)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i], sorted[j]) < 0
	})
	return &RankTable{
		enc:              newRankMap(entries),
		dec:              dec,
		sortedTokenBytes: sorted,
		maxRank:          maxRank,
	}, nil
}

// Rank returns the rank for a mergeable byte-sequence given as a (possibly
// zero-copy) string.
func (t *RankTable) Rank(piece string) (Rank, bool) { return t.enc.get(piece) }

// AppendBytes appends the byte-sequence for rank into dst, reporting
// whether rank is present in the mergeable vocabulary.
func (t *RankTable) AppendBytes(dst *[]byte, rank Rank) bool {
	return t.dec.AppendInto(dst, rank)
}

// Len returns the number of mergeable ranks.
func (t *RankTable) Len() int { return t.enc.len() }

// MaxRank returns the highest mergeable rank.
func (t *RankTable) MaxRank() Rank { return t.maxRank }

// SortedTokenBytes returns the lexicographically sorted byte-sequence
// index. Callers must not mutate the returned slices.
func (t *RankTable) SortedTokenBytes() [][]byte { return t.sortedTokenBytes }

// Close releases resources held by the decoder store.
func (t *RankTable) Close() { t.dec.Close() }
