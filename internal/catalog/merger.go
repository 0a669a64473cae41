package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"i18n-walker/internal/config"
	"i18n-walker/internal/errs"
	"i18n-walker/internal/phrase"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog"
)

var catalogFile = glob.MustCompile("*.json")

// Phrases is the read side of a phrase set.
type Phrases interface {
	Keys() []string
	Get(key string) (string, bool)
	Has(key string) bool
	Len() int
}

// Report describes what one merge changed. Added and Removed are cumulative
// over every catalog of the merge, in first-seen order.
type Report struct {
	// Created is the path of the default catalog when none existed.
	Created string
	// Updated lists the catalogs rewritten in place.
	Updated []string
	Added   []string
	Removed []string
	// Cleaned is true when the clean phase ran.
	Cleaned bool
}

// Merger reconciles a phrase set with the JSON catalogs of one directory.
// Existing values are never overwritten.
type Merger struct {
	dir         string
	defaultName string
	clean       bool
	dryRun      bool
	logger      zerolog.Logger
}

// NewMerger creates a Merger for the output directory of opts.
func NewMerger(opts config.Options, logger zerolog.Logger) *Merger {
	return &Merger{
		dir:         opts.OutputDir,
		defaultName: opts.DefaultCatalog,
		clean:       opts.Clean,
		dryRun:      opts.DryRun,
		logger:      logger,
	}
}

// Merge adds missing phrases to every catalog and, when cleaning is enabled
// and phrases is not empty, removes keys that were not found. With no catalog
// present a default one holding all phrases is created.
func (m *Merger) Merge(ctx context.Context, phrases Phrases) (*Report, error) {
	paths, err := m.catalogs()
	if err != nil {
		return nil, err
	}

	report := &Report{}
	if len(paths) == 0 {
		if err := m.create(phrases, report); err != nil {
			return nil, err
		}
		return report, nil
	}

	added := phrase.NewSet()
	removed := phrase.NewSet()
	cleaning := m.clean && phrases.Len() > 0

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c, err := Load(path)
		if err != nil {
			return nil, err
		}

		for _, key := range phrases.Keys() {
			if c.Has(key) {
				continue
			}
			value, _ := phrases.Get(key)
			if err := c.Set(key, value); err != nil {
				return nil, err
			}
			added.Add(key)
		}

		if cleaning {
			for _, key := range c.Keys() {
				if !phrases.Has(key) {
					c.Delete(key)
					removed.Add(key)
				}
			}
		}

		m.logger.Info().Str("path", path).Int("entries", c.Len()).Msg("Updating language file")
		if !m.dryRun {
			if err := c.Save(); err != nil {
				return nil, err
			}
		}
		report.Updated = append(report.Updated, path)
	}

	report.Added = added.Keys()
	report.Removed = removed.Keys()
	report.Cleaned = cleaning
	return report, nil
}

// catalogs lists the catalog files directly inside the output directory in
// name order. A missing directory is created and holds no catalogs.
func (m *Merger) catalogs() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if !m.dryRun {
			if err := os.MkdirAll(m.dir, 0o755); err != nil {
				return nil, &errs.EnumerationError{Pattern: m.dir, Err: err}
			}
		}
		return nil, nil
	case err != nil:
		return nil, &errs.EnumerationError{Pattern: filepath.Join(m.dir, "*.json"), Err: err}
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !catalogFile.Match(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(m.dir, e.Name()))
	}
	return paths, nil
}

func (m *Merger) create(phrases Phrases, report *Report) error {
	path := filepath.Join(m.dir, m.defaultName)
	c := New(path)
	for _, key := range phrases.Keys() {
		value, _ := phrases.Get(key)
		if err := c.Set(key, value); err != nil {
			return err
		}
	}

	m.logger.Info().Str("path", path).Int("entries", c.Len()).Msg("Storing results")
	if !m.dryRun {
		if err := c.Save(); err != nil {
			return fmt.Errorf("create default catalog: %w", err)
		}
	}
	report.Created = path
	return nil
}
