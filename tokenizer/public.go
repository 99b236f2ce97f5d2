package tokenizer

import "fmt"

// NewFromPairs assembles a ready-to-use Core from raw encoder pairs, a
// special-token map, and a pretokenization pattern — the shape every named
// encoding's construction in the root package reduces to. Construction
// fails if any rank is assigned to both a mergeable byte-sequence and a
// special-token literal.
func NewFromPairs(encoderPairs [][2]any, specials map[string]Rank, patStr string) (*Core, error) {
	rt, err := NewRankTable(encoderPairs)
	if err != nil {
		return nil, fmt.Errorf("building rank table: %w", err)
	}
	for lit, rank := range specials {
		var scratch []byte
		if rt.AppendBytes(&scratch, rank) {
			return nil, fmt.Errorf("special token %q rank %d collides with a mergeable token rank", lit, rank)
		}
	}
	pre, err := NewPretokenizer(patStr)
	if err != nil {
		return nil, fmt.Errorf("building pretokenizer: %w", err)
	}
	return NewCore(rt, NewSpecialTable(specials), pre), nil
}
