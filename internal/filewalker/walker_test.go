package filewalker

import (
	"os"
	"path/filepath"
	"testing"

	"i18n-walker/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalker_ResolveDispatchesByExtension(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"app/a.js",
		"app/B.JS",
		"app/c.ts",
		"app/view.html",
		"app/mail.txt",
		"app/style.css",
		"app/README.md",
	)

	w, err := NewWalker(config.Default())
	require.NoError(t, err)

	entries, err := w.Resolve(filepath.ToSlash(root) + "/app/*")
	require.NoError(t, err)

	got := make(map[string]string, len(entries))
	for _, e := range entries {
		res, err := e.Parser.Parse(e.Path, []byte("1;\n"), nil)
		require.NoError(t, err)
		got[filepath.Base(e.Path)] = res.FileType
	}

	assert.Equal(t, map[string]string{
		"a.js":      "source",
		"B.JS":      "source",
		"c.ts":      "source",
		"view.html": "markup",
		"mail.txt":  "text",
	}, got)
}

func TestWalker_ParseFile(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "a.js")
	require.NoError(t, os.WriteFile(p, []byte("__('From disk');\n"), 0o644))

	w, err := NewWalker(config.Default())
	require.NoError(t, err)

	entries, err := w.Resolve(filepath.ToSlash(p))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".js", entries[0].Ext)

	res, err := w.ParseFile(entries[0], nil)
	require.NoError(t, err)
	require.Len(t, res.Texts, 1)
	assert.Equal(t, "From disk", res.Texts[0].Text)
}

func TestWalker_ParseFileMissing(t *testing.T) {
	w, err := NewWalker(config.Default())
	require.NoError(t, err)

	_, err = w.ParseFile(FileEntry{Path: filepath.Join(t.TempDir(), "gone.js"), Ext: ".js", Parser: w.parsers[0]}, nil)
	assert.Error(t, err)
}

func TestNewWalker_InvalidPattern(t *testing.T) {
	opts := config.Default()
	opts.HTMLTranslatorPatterns = []string{"["}

	_, err := NewWalker(opts)
	assert.Error(t, err)
}
