// Package reader streams aligned sentence pairs out of a parallel corpus.
//
// A Reader owns the two line streams of one corpus and advances them in
// lockstep. When either stream ends the reader is drained: unmatched lines
// on the longer side are discarded and every later read returns no result.
//
// Token form reads are always available. Encoded reads need a vocabulary
// attached with WithVocabulary.
package reader

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/helixml/bitext/domain/corpus"
)

// Reader errors.
var (
	ErrNoVocabulary = errors.New("reader: no vocabulary attached")
	ErrClosed       = errors.New("reader: closed")
)

type state int

const (
	stateActive state = iota
	stateDrained
	stateFailed
	stateClosed
)

// Stats counts the work a Reader has done so far.
type Stats struct {
	// LinePairs is the number of line pairs consumed from the streams.
	LinePairs int64
	// Returned is the number of pairs handed to the caller.
	Returned int64
	// Skipped is the number of pairs rejected by the skip policy.
	Skipped int64
}

// Reader is a streaming cursor over one corpus. It is not safe for
// concurrent use.
type Reader struct {
	corpus corpus.Corpus
	source *lineStream
	target *lineStream
	cfg    readerConfig
	logger *slog.Logger

	state state
	err   error
	stats Stats
}

// Open opens both files of c for reading. It fails if either file
// cannot be opened.
func Open(c corpus.Corpus, opts ...Option) (*Reader, error) {
	cfg := newReaderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	source, err := openLineStream(c.SourceFile(), cfg.bufferSize)
	if err != nil {
		return nil, fmt.Errorf("open source of corpus %s: %w", c.Name(), err)
	}
	target, err := openLineStream(c.TargetFile(), cfg.bufferSize)
	if err != nil {
		_ = source.close()
		return nil, fmt.Errorf("open target of corpus %s: %w", c.Name(), err)
	}

	return &Reader{
		corpus: c,
		source: source,
		target: target,
		cfg:    cfg,
		logger: logger.With(slog.String("corpus", c.Name())),
	}, nil
}

// Corpus returns the corpus being read.
func (r *Reader) Corpus() corpus.Corpus { return r.corpus }

// Drained reports whether either stream has ended.
func (r *Reader) Drained() bool { return r.state == stateDrained }

// Stats returns the counters accumulated so far.
func (r *Reader) Stats() Stats { return r.stats }

// HasVocabulary reports whether encoded reads are available.
func (r *Reader) HasVocabulary() bool { return r.cfg.vocabulary != nil }

// Read returns the next pair in token form that passes the skip policy.
// ok is false once the corpus is exhausted.
func (r *Reader) Read() (pair corpus.SentencePair, ok bool, err error) {
	return readOne(r, tokenizeLine)
}

// ReadEncoded returns the next pair in encoded form that passes the skip
// policy. ok is false once the corpus is exhausted.
func (r *Reader) ReadEncoded() (pair corpus.EncodedPair, ok bool, err error) {
	if r.cfg.vocabulary == nil {
		return corpus.EncodedPair{}, false, ErrNoVocabulary
	}
	return readOne(r, r.encodeLine)
}

// Close releases both files. Reads after Close return ErrClosed.
func (r *Reader) Close() error {
	if r.state == stateClosed {
		return nil
	}
	r.state = stateClosed
	return errors.Join(r.source.close(), r.target.close())
}

func tokenizeLine(line string) []string {
	return Tokenize(line)
}

func (r *Reader) encodeLine(line string) []corpus.WordID {
	return Encode(r.cfg.vocabulary, line)
}

func readOne[T any](r *Reader, parse func(string) []T) (corpus.Pair[T], bool, error) {
	if err := r.check(); err != nil {
		return corpus.Pair[T]{}, false, err
	}
	if r.state == stateDrained {
		return corpus.Pair[T]{}, false, nil
	}

	for {
		src, tgt, ok, err := r.nextLines()
		if err != nil {
			return corpus.Pair[T]{}, false, err
		}
		if !ok {
			return corpus.Pair[T]{}, false, nil
		}

		pair := corpus.Pair[T]{Source: parse(src), Target: parse(tgt)}
		if r.skip(len(pair.Source), len(pair.Target)) {
			r.stats.Skipped++
			continue
		}
		r.stats.Returned++
		return pair, true, nil
	}
}

// check returns the error a read must report before touching the streams.
func (r *Reader) check() error {
	switch r.state {
	case stateClosed:
		return ErrClosed
	case stateFailed:
		return r.err
	default:
		return nil
	}
}

// nextLines reads one line from each stream. The target is not read when
// the source has already ended. ok is false once the reader is drained.
func (r *Reader) nextLines() (src, tgt string, ok bool, err error) {
	src, ok, err = r.source.next()
	if err != nil {
		return "", "", false, r.fail(err)
	}
	if !ok {
		r.drain()
		return "", "", false, nil
	}
	tgt, ok, err = r.target.next()
	if err != nil {
		return "", "", false, r.fail(err)
	}
	if !ok {
		r.drain()
		return "", "", false, nil
	}
	r.stats.LinePairs++
	return src, tgt, true, nil
}

func (r *Reader) drain() {
	r.state = stateDrained
	r.logger.Debug("corpus drained",
		slog.Int64("line_pairs", r.stats.LinePairs),
		slog.Int64("returned", r.stats.Returned),
		slog.Int64("skipped", r.stats.Skipped),
	)
}

func (r *Reader) fail(err error) error {
	r.state = stateFailed
	r.err = fmt.Errorf("corpus %s: %w", r.corpus.Name(), err)
	r.logger.Error("corpus read failed", slog.String("error", err.Error()))
	return r.err
}

// skip applies the emptiness and length policy to a pair's token counts.
func (r *Reader) skip(sourceLen, targetLen int) bool {
	if r.cfg.skipEmptyLines && (sourceLen == 0 || targetLen == 0) {
		return true
	}
	if r.cfg.maxLineLength > 0 && (sourceLen > r.cfg.maxLineLength || targetLen > r.cfg.maxLineLength) {
		return true
	}
	return false
}

// filtering reports whether the skip policy can reject anything.
func (r *Reader) filtering() bool {
	return r.cfg.skipEmptyLines || r.cfg.maxLineLength > 0
}
