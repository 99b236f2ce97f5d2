package tiktoken

import "golang.org/x/sync/errgroup"

// firstError returns the error at the lowest index in errs, or nil if none
// is set. errgroup.Group.Wait() itself returns whichever goroutine's error
// completes first in wall-clock time, which does not satisfy spec §4.7's
// "first error encountered (by input index)" contract, so batch errors are
// recorded per-index here and resolved by index after every goroutine has
// run to completion.
func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// EncodeOrdinaryBatch is the C8 component applied to EncodeOrdinary: it
// encodes every text independently across a data-parallel worker pool,
// preserving input order, and fails with the first error encountered by
// input index (spec §5).
func (e *Encoding) EncodeOrdinaryBatch(texts []string) ([][]Rank, error) {
	out := make([][]Rank, len(texts))
	errs := make([]error, len(texts))
	var g errgroup.Group
	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			toks, err := e.EncodeOrdinary(text)
			if err != nil {
				errs[i] = err
				return nil
			}
			out[i] = toks
			return nil
		})
	}
	_ = g.Wait()
	if err := firstError(errs); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeBatch is EncodeOrdinaryBatch's counterpart for Encode: every text
// is encoded under the same allowed/disallowed special-token policy.
func (e *Encoding) EncodeBatch(texts []string, allowed AllowedSpecial, disallowed DisallowedSpecial) ([][]Rank, error) {
	out := make([][]Rank, len(texts))
	errs := make([]error, len(texts))
	var g errgroup.Group
	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			toks, err := e.Encode(text, allowed, disallowed)
			if err != nil {
				errs[i] = err
				return nil
			}
			out[i] = toks
			return nil
		})
	}
	_ = g.Wait()
	if err := firstError(errs); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeTokensBytes is the batch decode counterpart: each token sequence is
// decoded to bytes independently, in parallel, with order preserved and
// first-error-by-index semantics.
func (e *Encoding) DecodeTokensBytes(tokenBatches [][]Rank) ([][]byte, error) {
	out := make([][]byte, len(tokenBatches))
	errs := make([]error, len(tokenBatches))
	var g errgroup.Group
	for i, tokens := range tokenBatches {
		i, tokens := i, tokens
		g.Go(func() error {
			bs, err := e.DecodeBytes(tokens)
			if err != nil {
				errs[i] = err
				return nil
			}
			out[i] = bs
			return nil
		})
	}
	_ = g.Wait()
	if err := firstError(errs); err != nil {
		return nil, err
	}
	return out, nil
}
