package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/helixml/bitext/domain/corpus"
	"gopkg.in/yaml.v3"
)

// ManifestEntry is the serialised form of one corpus.
type ManifestEntry struct {
	Name   string `yaml:"name" json:"name"`
	Source string `yaml:"source" json:"source"`
	Target string `yaml:"target" json:"target"`
}

// Manifest is a serialisable list of corpora.
type Manifest struct {
	Entries []ManifestEntry `yaml:"corpora" json:"corpora"`
}

// NewManifest creates a Manifest from corpora.
func NewManifest(corpora []corpus.Corpus) Manifest {
	entries := make([]ManifestEntry, 0, len(corpora))
	for _, c := range corpora {
		entries = append(entries, ManifestEntry{
			Name:   c.Name(),
			Source: c.SourceFile(),
			Target: c.TargetFile(),
		})
	}
	return Manifest{Entries: entries}
}

// Corpora rebuilds the corpus descriptors. Names are derived from the
// source file, so a hand-edited name field is ignored.
func (m Manifest) Corpora() []corpus.Corpus {
	result := make([]corpus.Corpus, 0, len(m.Entries))
	for _, e := range m.Entries {
		result = append(result, corpus.NewCorpus(e.Source, e.Target))
	}
	return result
}

// WriteYAML encodes the manifest as YAML.
func (m Manifest) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return enc.Close()
}

// WriteJSON encodes the manifest as indented JSON.
func (m Manifest) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return nil
}

// ReadManifest decodes a YAML manifest. JSON input is accepted too since
// it is valid YAML.
func ReadManifest(r io.Reader) (Manifest, error) {
	var m Manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return Manifest{}, nil
		}
		return Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}
	for i, e := range m.Entries {
		if e.Source == "" || e.Target == "" {
			return Manifest{}, fmt.Errorf("manifest entry %d: source and target are required", i)
		}
	}
	return m, nil
}
