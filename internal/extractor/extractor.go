package extractor

import (
	"context"
	"fmt"
	"sync"

	"i18n-walker/internal/catalog"
	"i18n-walker/internal/config"
	"i18n-walker/internal/filewalker"
	"i18n-walker/internal/parser"
	"i18n-walker/internal/phrase"

	"github.com/rs/zerolog"
)

// Result is the outcome of one run.
type Result struct {
	Phrases     *phrase.Set
	Diagnostics []parser.Diagnostic
	// Files is the number of files scanned.
	Files  int
	Report *catalog.Report
}

// Extractor scans the configured sources and merges the phrases it finds
// into the catalogs. Runs on one Extractor never overlap.
type Extractor struct {
	mu     sync.Mutex
	opts   config.Options
	logger zerolog.Logger
}

// New creates an Extractor after validating opts.
func New(opts config.Options, logger zerolog.Logger) (*Extractor, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return &Extractor{opts: opts.Clone(), logger: logger}, nil
}

// Options returns a copy of the active options.
func (e *Extractor) Options() config.Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts.Clone()
}

// Reconfigure applies a field-level override to the active options. Fields
// left nil in ov keep their value. Invalid results are rejected and the
// previous options stay active.
func (e *Extractor) Reconfigure(ov config.Overrides) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.opts.Apply(ov)
	if err := next.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	e.opts = next
	return nil
}

// Run expands every source pattern in order, scans the matching files one at
// a time and merges the collected phrases once at the end. The first parse or
// enumeration error stops the run.
func (e *Extractor) Run(ctx context.Context) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	walker, err := filewalker.NewWalker(e.opts)
	if err != nil {
		return nil, err
	}

	res := &Result{Phrases: phrase.NewSet()}

	for _, pattern := range e.opts.Sources {
		entries, err := walker.Resolve(pattern)
		if err != nil {
			return nil, err
		}

		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := e.scan(walker, entry, res); err != nil {
				return nil, err
			}
		}
	}

	e.logger.Info().
		Int("files", res.Files).
		Int("phrases", res.Phrases.Len()).
		Msg("Scan complete")

	merger := catalog.NewMerger(e.opts, e.logger)
	report, err := merger.Merge(ctx, res.Phrases)
	if err != nil {
		return nil, err
	}
	res.Report = report

	if report.Cleaned {
		e.logger.Info().Int("count", len(report.Removed)).Strs("keys", report.Removed).Msg("Removed keys")
	}
	e.logger.Info().Int("count", len(report.Added)).Strs("keys", report.Added).Msg("Added keys")

	return res, nil
}

func (e *Extractor) scan(walker *filewalker.Walker, entry filewalker.FileEntry, res *Result) error {
	e.logger.Info().Str("file", entry.Path).Msg("Analyzing file")

	pr, err := walker.ParseFile(entry, res.Phrases)
	if err != nil {
		return err
	}
	res.Files++

	for _, et := range pr.Texts {
		res.Phrases.Add(et.Text)
	}

	if !e.opts.Recommend {
		return nil
	}
	for _, d := range pr.Diagnostics {
		ev := e.logger.Warn().Str("file", d.File).Str("text", d.Text)
		if d.Kind == parser.KindLiteral {
			ev = ev.Int("line", d.Line).Int("column", d.Column)
		} else {
			ev = ev.Int("counter", d.Counter)
		}
		ev.Msg("Missing translation")
	}
	res.Diagnostics = append(res.Diagnostics, pr.Diagnostics...)

	return nil
}
