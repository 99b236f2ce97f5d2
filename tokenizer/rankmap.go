package tokenizer

import (
	"github.com/cespare/xxhash/v2"
)

// rankMap is a fixed-size, open-addressing hash table mapping byte-sequence
// keys (held as strings, so that slicing a fragment never allocates) to
// ranks. It exists to serve the C4 merge hot path: pair lookups key on
// sub-strings of the fragment being merged, hashed with xxhash rather than
// Go's built-in (randomized, AES-based) map hash, per spec §9's guidance to
// use "a fast, non-cryptographic hash (e.g., FxHash-style)" on the merge
// hot path.
//
// rankMap is built once and is immutable thereafter; concurrent reads are
// safe without synchronization.
type rankMap struct {
	slots []rankSlot
	mask  uint64
	count int
}

type rankSlot struct {
	key  string
	rank Rank
	set  bool
}

func newRankMap(entries map[string]Rank) *rankMap {
	n := len(entries)
	size := uint64(8)
	for size < uint64(n)*2 {
		size *= 2
	}
	m := &rankMap{
		slots: make([]rankSlot, size),
		mask:  size - 1,
	}
	for k, r := range entries {
		m.insert(k, r)
	}
	return m
}

func (m *rankMap) insert(key string, rank Rank) {
	i := xxhash.Sum64String(key) & m.mask
	for {
		s := &m.slots[i]
		if !s.set {
			s.key = key
			s.rank = rank
			s.set = true
			m.count++
			return
		}
		if s.key == key {
			s.rank = rank
			return
		}
		i = (i + 1) & m.mask
	}
}

// get looks up key, which may be a zero-copy sub-string of a larger
// fragment (Go string slicing shares the backing array, so no allocation
// happens at call sites like piece[i:j]).
func (m *rankMap) get(key string) (Rank, bool) {
	i := xxhash.Sum64String(key) & m.mask
	for {
		s := &m.slots[i]
		if !s.set {
			return 0, false
		}
		if s.key == key {
			return s.rank, true
		}
		i = (i + 1) & m.mask
	}
}

func (m *rankMap) len() int { return m.count }
