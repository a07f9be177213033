package reader

import (
	"github.com/helixml/bitext/domain/corpus"
	"golang.org/x/sync/errgroup"
)

// maxPrealloc caps the up-front capacity of the raw line buffer so a huge
// limit on a short corpus does not allocate the whole limit.
const maxPrealloc = 4096

type linePair struct {
	source string
	target string
}

// ReadBatch reads up to limit line pairs, tokenizes them in parallel and
// drops the pairs rejected by the skip policy. Output order matches file
// order.
//
// An empty result means no pair survived. It does not by itself mean the
// corpus is exhausted: a batch filtered down to nothing is followed by
// more reads. Use Drained to tell the two apart.
func (r *Reader) ReadBatch(limit int) ([]corpus.SentencePair, error) {
	return readBatch(r, limit, tokenizeLine)
}

// ReadEncodedBatch is ReadBatch producing vocabulary-encoded pairs.
func (r *Reader) ReadEncodedBatch(limit int) ([]corpus.EncodedPair, error) {
	if r.cfg.vocabulary == nil {
		return nil, ErrNoVocabulary
	}
	return readBatch(r, limit, r.encodeLine)
}

func readBatch[T any](r *Reader, limit int, parse func(string) []T) ([]corpus.Pair[T], error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	if r.state == stateDrained || limit <= 0 {
		return nil, nil
	}

	lines := make([]linePair, 0, min(limit, maxPrealloc))
	for len(lines) < limit {
		src, tgt, ok, err := r.nextLines()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		lines = append(lines, linePair{source: src, target: tgt})
	}
	if len(lines) == 0 {
		return nil, nil
	}

	pairs := make([]corpus.Pair[T], len(lines))
	err := r.parallel(len(lines), func(i int) {
		pairs[i] = corpus.Pair[T]{
			Source: parse(lines[i].source),
			Target: parse(lines[i].target),
		}
	})
	if err != nil {
		return nil, err
	}

	if r.filtering() {
		pairs = retain(pairs, func(p corpus.Pair[T]) bool {
			return !r.skip(len(p.Source), len(p.Target))
		})
		r.stats.Skipped += int64(len(lines) - len(pairs))
	}
	r.stats.Returned += int64(len(pairs))

	if len(pairs) == 0 {
		return nil, nil
	}
	return pairs, nil
}

// parallel calls fn for every index in [0, n) on at most the configured
// number of goroutines. Each index is handed to the next free worker, so
// long lines do not stall a fixed share of the batch. fn must only write
// state owned by its index.
func (r *Reader) parallel(n int, fn func(i int)) error {
	workers := min(r.cfg.workers, n)
	if workers <= 1 {
		for i := range n {
			fn(i)
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range n {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	return g.Wait()
}

// retain returns the pairs for which keep is true, preserving order.
func retain[T any](pairs []corpus.Pair[T], keep func(corpus.Pair[T]) bool) []corpus.Pair[T] {
	kept := make([]corpus.Pair[T], 0, len(pairs))
	for _, p := range pairs {
		if keep(p) {
			kept = append(kept, p)
		}
	}
	return kept
}
