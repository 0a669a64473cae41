package filewalker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"i18n-walker/internal/config"
	"i18n-walker/internal/parser"
)

// Walker expands source patterns and dispatches files to the correct parser.
type Walker struct {
	resolver *Resolver
	parsers  []parser.Parser
}

// NewWalker creates a Walker with the source, markup and text parsers
// configured by opts.
func NewWalker(opts config.Options) (*Walker, error) {
	markup, err := parser.NewMarkupParser(opts)
	if err != nil {
		return nil, fmt.Errorf("create markup parser: %w", err)
	}
	text, err := parser.NewTextParser(opts)
	if err != nil {
		return nil, fmt.Errorf("create text parser: %w", err)
	}

	return &Walker{
		resolver: NewResolver(),
		parsers: []parser.Parser{
			parser.NewSourceParser(opts),
			markup,
			text,
		},
	}, nil
}

// FileEntry represents a discovered file ready for processing.
type FileEntry struct {
	Path   string
	Ext    string
	Parser parser.Parser
}

// Resolve expands one pattern and keeps the files some parser can handle.
// Files with other extensions are skipped silently.
func (w *Walker) Resolve(pattern string) ([]FileEntry, error) {
	paths, err := w.resolver.Expand(pattern)
	if err != nil {
		return nil, err
	}

	var entries []FileEntry
	for _, p := range paths {
		ext := strings.ToLower(filepath.Ext(p))
		for _, ps := range w.parsers {
			if ps.CanParse(ext) {
				entries = append(entries, FileEntry{
					Path:   p,
					Ext:    ext,
					Parser: ps,
				})
				break
			}
		}
	}

	return entries, nil
}

// ParseFile reads a file and parses it with its parser.
func (w *Walker) ParseFile(entry FileEntry, known parser.Lookup) (*parser.ParseResult, error) {
	content, err := os.ReadFile(entry.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", entry.Path, err)
	}
	return entry.Parser.Parse(entry.Path, content, known)
}
