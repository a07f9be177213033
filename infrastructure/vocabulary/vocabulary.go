// Package vocabulary provides an in-memory token to id mapping.
//
// A Builder collects tokens in first-seen order. Build freezes it into a
// Vocabulary, which is read-only and safe for concurrent lookups.
// Ids start at 1; corpus.NullWord is returned for unknown tokens.
//
// The on-disk format is one token per line, id = line number (1-based).
package vocabulary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/helixml/bitext/domain/corpus"
)

// Vocabulary is an immutable token to id mapping.
type Vocabulary struct {
	ids   map[string]corpus.WordID
	words []string
}

// Get returns the id of token, or corpus.NullWord when it is unknown.
func (v *Vocabulary) Get(token string) corpus.WordID {
	return v.ids[token]
}

// Word returns the token with the given id.
func (v *Vocabulary) Word(id corpus.WordID) (string, bool) {
	if id == corpus.NullWord || int(id) > len(v.words) {
		return "", false
	}
	return v.words[id-1], true
}

// Size returns the number of known tokens.
func (v *Vocabulary) Size() int { return len(v.words) }

// WriteTo writes one token per line in id order.
func (v *Vocabulary) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, word := range v.words {
		written, err := bw.WriteString(word)
		n += int64(written)
		if err != nil {
			return n, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return n, err
		}
		n++
	}
	return n, bw.Flush()
}

// Save writes the vocabulary to path.
func (v *Vocabulary) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("vocabulary: %w", err)
	}
	if _, err := v.WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("vocabulary: write %s: %w", path, err)
	}
	return f.Close()
}

// Read parses a vocabulary written by WriteTo.
func Read(r io.Reader) (*Vocabulary, error) {
	b := NewBuilder()
	br := bufio.NewReader(r)
	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("vocabulary: read error: %w", err)
		}
		if errors.Is(err, io.EOF) && line == "" {
			break
		}
		if line != "" && line[len(line)-1] == '\n' {
			line = line[:len(line)-1]
		}
		if _, dup := b.ids[line]; dup {
			return nil, fmt.Errorf("vocabulary: duplicate token %q on line %d", line, lineNo)
		}
		b.Add(line)
		if err != nil {
			break
		}
	}
	return b.Build(), nil
}

// Load reads a vocabulary file.
func Load(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vocabulary: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Builder accumulates tokens. It is not safe for concurrent use.
type Builder struct {
	ids   map[string]corpus.WordID
	words []string
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{ids: make(map[string]corpus.WordID)}
}

// Add returns the id of token, assigning the next id if it is new.
func (b *Builder) Add(token string) corpus.WordID {
	if id, ok := b.ids[token]; ok {
		return id
	}
	b.words = append(b.words, token)
	id := corpus.WordID(len(b.words))
	b.ids[token] = id
	return id
}

// AddSentence adds every token of a sentence.
func (b *Builder) AddSentence(tokens []string) {
	for _, tok := range tokens {
		b.Add(tok)
	}
}

// Size returns the number of tokens added so far.
func (b *Builder) Size() int { return len(b.words) }

// Build returns an immutable snapshot. The Builder may keep growing
// without affecting it.
func (b *Builder) Build() *Vocabulary {
	ids := make(map[string]corpus.WordID, len(b.ids))
	for k, v := range b.ids {
		ids[k] = v
	}
	words := make([]string, len(b.words))
	copy(words, b.words)
	return &Vocabulary{ids: ids, words: words}
}
