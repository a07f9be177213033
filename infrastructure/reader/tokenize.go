package reader

import (
	"strings"

	"github.com/helixml/bitext/domain/corpus"
)

// Tokenize splits a line on single spaces. Consecutive spaces produce
// empty tokens and no other whitespace is treated as a separator. The
// empty line has no tokens.
func Tokenize(line string) corpus.Sentence {
	if line == "" {
		return corpus.Sentence{}
	}
	tokens := strings.Split(line, " ")
	// a trailing separator does not start a new token
	if tokens[len(tokens)-1] == "" {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

// Encode tokenizes a line and maps every token through vocab.
func Encode(vocab corpus.Vocabulary, line string) corpus.EncodedSentence {
	tokens := Tokenize(line)
	ids := make(corpus.EncodedSentence, len(tokens))
	for i, tok := range tokens {
		ids[i] = vocab.Get(tok)
	}
	return ids
}
