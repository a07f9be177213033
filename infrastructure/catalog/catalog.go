// Package catalog discovers parallel corpora in a directory tree.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/helixml/bitext/domain/corpus"
)

// ErrNotDirectory is returned when the root given to List is not a directory.
var ErrNotDirectory = errors.New("catalog: root is not a directory")

// Scanner walks a directory tree looking for source files that have a
// sibling target file with the same stem.
type Scanner struct {
	logger *slog.Logger
}

// NewScanner creates a new Scanner.
func NewScanner(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{logger: logger}
}

// List returns one Corpus for every regular file under root whose
// extension is "."+sourceLang and whose sibling with extension
// "."+targetLang exists and is a regular file.
//
// The walk is depth-first. Entries that cannot be read below root are
// skipped; a missing or unreadable root, or one that is not a directory,
// is an error.
func (s *Scanner) List(root, sourceLang, targetLang string) ([]corpus.Corpus, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}

	sourceExt := "." + sourceLang
	var corpora []corpus.Corpus

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == absRoot {
				return walkErr
			}
			s.logger.Debug("skipping unreadable entry",
				slog.String("path", path),
				slog.String("error", walkErr.Error()),
			)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == absRoot && !d.IsDir() {
			return fmt.Errorf("%w: %s", ErrNotDirectory, absRoot)
		}
		if d.IsDir() || !isRegular(path, d) {
			return nil
		}
		if filepath.Ext(path) != sourceExt {
			return nil
		}

		targetFile := replaceExt(path, targetLang)
		if info, err := os.Stat(targetFile); err != nil || !info.Mode().IsRegular() {
			return nil
		}

		c := corpus.NewCorpus(path, targetFile)
		s.logger.Debug("found corpus",
			slog.String("name", c.Name()),
			slog.String("source", c.SourceFile()),
			slog.String("target", c.TargetFile()),
		)
		corpora = append(corpora, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list corpora in %s: %w", root, err)
	}

	s.logger.Info("listed corpora",
		slog.String("root", absRoot),
		slog.String("source_lang", sourceLang),
		slog.String("target_lang", targetLang),
		slog.Int("corpora", len(corpora)),
	)

	return corpora, nil
}

// List scans root with a Scanner using the default logger.
func List(root, sourceLang, targetLang string) ([]corpus.Corpus, error) {
	return NewScanner(nil).List(root, sourceLang, targetLang)
}

// isRegular reports whether the entry is a regular file, following
// symlinks so that links to regular files qualify.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func replaceExt(path, lang string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	if lang == "" {
		return base
	}
	if !strings.HasPrefix(lang, ".") {
		lang = "." + lang
	}
	return base + lang
}
