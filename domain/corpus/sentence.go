package corpus

// WordID is a vocabulary-assigned token identifier.
type WordID uint32

// NullWord is the id vocabularies return for tokens they do not know.
const NullWord WordID = 0

// Sentence is one line split into tokens, in word order.
type Sentence []string

// EncodedSentence is a Sentence mapped through a Vocabulary.
type EncodedSentence []WordID

// Pair is one aligned source/target sentence pair. Its sides are plain
// slices; a Sentence or EncodedSentence converts to them without copying.
type Pair[T any] struct {
	Source []T
	Target []T
}

// SentencePair is a pair in token form.
type SentencePair = Pair[string]

// EncodedPair is a pair in vocabulary-encoded form.
type EncodedPair = Pair[WordID]

// Vocabulary maps tokens to ids. Implementations must be safe for
// concurrent calls to Get.
type Vocabulary interface {
	Get(token string) WordID
}
