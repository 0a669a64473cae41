package filewalker

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"i18n-walker/internal/errs"

	"github.com/gobwas/glob"
)

const globMeta = "*?[{"

// Resolver expands glob patterns into file lists. Supported syntax is that of
// gobwas/glob with '/' as separator; "**" also matches zero directories, so
// "lib/**/*.js" includes "lib/a.js".
type Resolver struct{}

// NewResolver creates a Resolver.
func NewResolver() *Resolver { return &Resolver{} }

// Expand returns the sorted, de-duplicated files matching pattern. A pattern
// without metacharacters yields the file itself when it exists. A base
// directory that does not exist yields no files. Hidden directories below
// the base are not entered and hidden files are skipped unless the last
// pattern segment starts with a dot.
func (r *Resolver) Expand(pattern string) ([]string, error) {
	clean := path.Clean(filepath.ToSlash(strings.TrimSpace(pattern)))
	if clean == "" || clean == "." {
		return nil, &errs.EnumerationError{Pattern: pattern, Err: errors.New("empty pattern")}
	}

	if !strings.ContainsAny(clean, globMeta) {
		info, err := os.Stat(filepath.FromSlash(clean))
		switch {
		case err == nil && !info.IsDir():
			return []string{filepath.FromSlash(clean)}, nil
		case err == nil, errors.Is(err, fs.ErrNotExist):
			return nil, nil
		default:
			return nil, &errs.EnumerationError{Pattern: pattern, Err: err}
		}
	}

	matchers, err := compileVariants(clean)
	if err != nil {
		return nil, &errs.EnumerationError{Pattern: pattern, Err: err}
	}

	base, rest := splitBase(clean)
	maxDepth := -1
	if !strings.Contains(rest, "**") {
		maxDepth = strings.Count(rest, "/") + 1
	}

	root := filepath.FromSlash(base)
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	// Dot files only match when the last pattern segment names them.
	dotFiles := strings.HasPrefix(path.Base(clean), ".")

	seen := make(map[string]struct{})
	var files []string

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		slashed := filepath.ToSlash(p)
		if base == "." {
			slashed = strings.TrimPrefix(slashed, "./")
		}

		if d.IsDir() {
			if p == root {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if maxDepth >= 0 && depth(base, slashed) >= maxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if !dotFiles && strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		for _, m := range matchers {
			if m.Match(slashed) {
				if _, dup := seen[p]; !dup {
					seen[p] = struct{}{}
					files = append(files, p)
				}
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, &errs.EnumerationError{Pattern: pattern, Err: err}
	}

	sort.Strings(files)
	return files, nil
}

// compileVariants compiles pattern plus the variant where every "**/" also
// matches nothing, since gobwas "**" needs the separators around it.
func compileVariants(pattern string) ([]glob.Glob, error) {
	variants := []string{pattern}
	if collapsed := strings.ReplaceAll(pattern, "**/", ""); collapsed != pattern && collapsed != "" {
		variants = append(variants, collapsed)
	}

	matchers := make([]glob.Glob, 0, len(variants))
	for _, v := range variants {
		g, err := glob.Compile(v, '/')
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, g)
	}
	return matchers, nil
}

// splitBase splits a slash pattern into its static directory prefix and the
// remainder that contains metacharacters.
func splitBase(pattern string) (base, rest string) {
	segments := strings.Split(pattern, "/")
	i := 0
	for ; i < len(segments)-1; i++ {
		if strings.ContainsAny(segments[i], globMeta) {
			break
		}
	}

	base = strings.Join(segments[:i], "/")
	switch {
	case base == "" && strings.HasPrefix(pattern, "/"):
		base = "/"
	case base == "":
		base = "."
	}
	return base, strings.Join(segments[i:], "/")
}

// depth counts the directory levels of p below base.
func depth(base, p string) int {
	rel := p
	if base != "." {
		rel = strings.TrimPrefix(strings.TrimPrefix(p, base), "/")
	}
	return strings.Count(rel, "/") + 1
}
