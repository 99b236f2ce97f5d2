package tokenizer

// buildTestVocab returns encoder pairs covering every single byte (ranked
// by its own value, 0..255) plus any additional multi-byte merges supplied
// by extra, ranked starting at 256 in the order given.
func buildTestVocab(extra []string) [][2]any {
	pairs := make([][2]any, 0, 256+len(extra))
	for b := 0; b < 256; b++ {
		pairs = append(pairs, [2]any{[]byte{byte(b)}, Rank(b)})
	}
	for i, tok := range extra {
		pairs = append(pairs, [2]any{[]byte(tok), Rank(256 + i)})
	}
	return pairs
}
