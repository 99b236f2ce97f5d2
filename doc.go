// Package tiktoken implements a tiktoken-style byte-pair-encoding
// tokenizer: the rank table, special-token table, Unicode pretokenizer,
// BPE merger, encoder, unstable encoder, and decoder live in the tokenizer
// subpackage; this package wires them into named, process-lifetime
// Encoding values and the public construction/batch API.
package tiktoken
