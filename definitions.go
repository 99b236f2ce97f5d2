package tiktoken

import "github.com/go-tiktoken/tiktoken/tokenizer"

const (
	literalEndOfText   = tokenizer.LiteralEndOfText
	literalFimPrefix   = tokenizer.LiteralFimPrefix
	literalFimMiddle   = tokenizer.LiteralFimMiddle
	literalFimSuffix   = tokenizer.LiteralFimSuffix
	literalEndOfPrompt = tokenizer.LiteralEndOfPrompt
)

// gpt2Pattern is shared by gpt2, r50k_base, p50k_base, and p50k_edit (spec
// §6.1); cl100k_base and o200k_base each define their own.
const gpt2Pattern = `'s|'t|'re|'ve|'m|'ll|'d| ?\p{L}+| ?\p{N}+| ?[^\s\p{L}\p{N}]+|\s+(?!\S)|\s+`

const cl100kPattern = `(?i:'s|'t|'re|'ve|'m|'ll|'d)|[^\r\n\p{L}\p{N}]?\p{L}+|\p{N}{1,3}| ?[^\s\p{L}\p{N}]+[\r\n]*|\s*[\r\n]+|\s+(?!\S)|\s+`

// o200kPattern is the published gpt-4o-family pretokenizer pattern. It is
// not named by spec.md's five required encodings; it is carried over as a
// bonus sixth registration because the teacher repo's whole tokenizer/
// package layout, loader caching, and arena/heap decoder stores were built
// specifically to serve this vocabulary (see DESIGN.md).
const o200kPattern = `[^\r\n\p{L}\p{N}]?[\p{Lu}\p{Lt}\p{Lm}\p{Lo}\p{M}]*[\p{Ll}\p{Lm}\p{Lo}\p{M}]+(?i:'s|'t|'re|'ve|'m|'ll|'d)?|[^\r\n\p{L}\p{N}]?[\p{Lu}\p{Lt}\p{Lm}\p{Lo}\p{M}]+[\p{Ll}\p{Lm}\p{Lo}\p{M}]*(?i:'s|'t|'re|'ve|'m|'ll|'d)?|\p{N}{1,3}| ?[^\s\p{L}\p{N}]+[\r\n/]*|\s*[\r\n]+|\s+(?!\S)|\s+`

// definition is the nullary-builder payload spec §6.1/§6.3 describes as
// "a tuple (pattern, rank_source, special_tokens, explicit_n_vocab?)".
type definition struct {
	name           string
	pattern        string
	specials       map[string]Rank
	explicitNVocab int // 0 means unset
	loadRanks      func() ([][2]any, error)
}

func gpt2Definition() definition {
	return definition{
		name:           "gpt2",
		pattern:        gpt2Pattern,
		specials:       map[string]Rank{literalEndOfText: 50256},
		explicitNVocab: 50257,
		loadRanks: func() ([][2]any, error) {
			return tokenizer.LoadDataGymBPE(
				"https://openaipublic.blob.core.windows.net/gpt-2/encodings/main/vocab.bpe",
				"https://openaipublic.blob.core.windows.net/gpt-2/encodings/main/encoder.json",
			)
		},
	}
}

func r50kBaseDefinition() definition {
	return definition{
		name:           "r50k_base",
		pattern:        gpt2Pattern,
		specials:       map[string]Rank{literalEndOfText: 50256},
		explicitNVocab: 50257,
		loadRanks: func() ([][2]any, error) {
			return tokenizer.LoadTiktokenBPE("r50k_base.tiktoken", tokenizer.KnownVocabHashes["r50k_base.tiktoken"])
		},
	}
}

func p50kBaseDefinition() definition {
	return definition{
		name:           "p50k_base",
		pattern:        gpt2Pattern,
		specials:       map[string]Rank{literalEndOfText: 50256},
		explicitNVocab: 50281,
		loadRanks: func() ([][2]any, error) {
			return tokenizer.LoadTiktokenBPE("p50k_base.tiktoken", tokenizer.KnownVocabHashes["p50k_base.tiktoken"])
		},
	}
}

func p50kEditDefinition() definition {
	return definition{
		name:    "p50k_edit",
		pattern: gpt2Pattern,
		specials: map[string]Rank{
			literalEndOfText: 50256,
			literalFimPrefix: 50281,
			literalFimMiddle: 50282,
			literalFimSuffix: 50283,
		},
		loadRanks: func() ([][2]any, error) {
			return tokenizer.LoadTiktokenBPE("p50k_base.tiktoken", tokenizer.KnownVocabHashes["p50k_base.tiktoken"])
		},
	}
}

func cl100kBaseDefinition() definition {
	return definition{
		name:    "cl100k_base",
		pattern: cl100kPattern,
		specials: map[string]Rank{
			literalEndOfText:   100257,
			literalFimPrefix:   100258,
			literalFimMiddle:   100259,
			literalFimSuffix:   100260,
			literalEndOfPrompt: 100276,
		},
		loadRanks: func() ([][2]any, error) {
			return tokenizer.LoadTiktokenBPE("cl100k_base.tiktoken", tokenizer.KnownVocabHashes["cl100k_base.tiktoken"])
		},
	}
}

func o200kBaseDefinition() definition {
	return definition{
		name:    "o200k_base",
		pattern: o200kPattern,
		specials: map[string]Rank{
			literalEndOfText:   199999,
			literalEndOfPrompt: 200018,
		},
		loadRanks: func() ([][2]any, error) {
			return tokenizer.LoadTiktokenBPE("o200k_base.tiktoken", tokenizer.KnownVocabHashes["o200k_base.tiktoken"])
		},
	}
}
