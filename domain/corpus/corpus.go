// Package corpus provides domain types for parallel text corpora.
package corpus

import (
	"path/filepath"
	"strings"
)

// Corpus describes a pair of line-aligned source and target files.
// Immutable value object.
type Corpus struct {
	name       string
	sourceFile string
	targetFile string
}

// NewCorpus creates a Corpus from an explicit file pair.
// The name is the source file's base name without its extension.
func NewCorpus(sourceFile, targetFile string) Corpus {
	return Corpus{
		name:       stem(sourceFile),
		sourceFile: sourceFile,
		targetFile: targetFile,
	}
}

// Name returns the corpus name.
func (c Corpus) Name() string { return c.name }

// SourceFile returns the path of the source-language file.
func (c Corpus) SourceFile() string { return c.sourceFile }

// TargetFile returns the path of the target-language file.
func (c Corpus) TargetFile() string { return c.targetFile }

// String returns the corpus name.
func (c Corpus) String() string { return c.name }

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
