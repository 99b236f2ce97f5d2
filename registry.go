package tiktoken

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// registry is the process-wide name -> constructor mapping (spec §6.3),
// modeled as a read-only table populated at init time.
var registry = map[string]func() definition{
	"gpt2":        gpt2Definition,
	"r50k_base":   r50kBaseDefinition,
	"p50k_base":   p50kBaseDefinition,
	"p50k_edit":   p50kEditDefinition,
	"cl100k_base": cl100kBaseDefinition,
	"o200k_base":  o200kBaseDefinition,
}

// encodingCache caches constructed *Encoding values by name: building one
// means downloading/parsing a multi-megabyte vocabulary, so repeat lookups
// of the same name should not repeat that work. This resolves the
// `// TODO: cache created Encoding object` left on the upstream
// `get_encoding` this package's GetEncoding is grounded on.
var (
	encodingCacheOnce sync.Once
	encodingCache     *lru.Cache[string, *Encoding]
)

func cache() *lru.Cache[string, *Encoding] {
	encodingCacheOnce.Do(func() {
		c, err := lru.New[string, *Encoding](8)
		if err != nil {
			panic(err) // only fails for a non-positive size, which 8 never is
		}
		encodingCache = c
	})
	return encodingCache
}

// ListEncodingNames returns every registered encoding name, in unspecified
// order (spec's supplemented `list_encoding_names`).
func ListEncodingNames() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	return out
}

// GetEncoding constructs (or returns a cached) Encoding for a registered
// name.
func GetEncoding(name string) (*Encoding, error) {
	if enc, ok := cache().Get(name); ok {
		return enc, nil
	}
	ctor, ok := registry[name]
	if !ok {
		return nil, newErr(KindUnknownEncoding, "unknown encoding %q", name)
	}
	enc, err := buildEncoding(ctor())
	if err != nil {
		return nil, err
	}
	cache().Add(name, enc)
	return enc, nil
}

// EncodingForModel resolves a model name to its encoding (spec §6.3: exact
// match, then longest prefix match) and constructs/returns it.
func EncodingForModel(model string) (*Encoding, error) {
	name, ok := encodingNameForModel(model)
	if !ok {
		return nil, newErr(KindUnknownModel, "could not automatically map %q to an encoding; use GetEncoding with an explicit name", model)
	}
	return GetEncoding(name)
}
