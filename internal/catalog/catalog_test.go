package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Bytes(t *testing.T) {
	c := New("")
	require.NoError(t, c.Set("b", "B"))
	require.NoError(t, c.Set("a", "<a href=\"x\">&</a>"))

	data, err := c.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"b\": \"B\",\n  \"a\": \"<a href=\\\"x\\\">&</a>\"\n}\n", string(data))
}

func TestCatalog_EscapedKeysRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"say \"hi\"":"é","tab\there":"t"}`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{`say "hi"`, "tab\there"}, c.Keys())

	v, ok := c.Get(`say "hi"`)
	require.True(t, ok)
	assert.Equal(t, "é", v)

	require.NoError(t, c.Save())
	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c.Keys(), again.Keys())
}

func TestCatalog_GetNonString(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"n":1,"o":{"one":"x"}}`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	assert.True(t, c.Has("n"))
	_, ok := c.Get("n")
	assert.False(t, ok)
	_, ok = c.Get("missing")
	assert.False(t, ok)

	c.Delete("n")
	assert.Equal(t, 1, c.Len())
}

func TestCatalog_LoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "absent.json"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = Load(empty)
	assert.Error(t, err)
}

func TestCatalog_SaveWithoutPath(t *testing.T) {
	assert.Error(t, New("").Save())
}

func TestCatalog_SaveFileMode(t *testing.T) {
	dir := t.TempDir()

	fresh := New(filepath.Join(dir, "new.json"))
	require.NoError(t, fresh.Set("A", "A"))
	require.NoError(t, fresh.Save())

	info, err := os.Stat(fresh.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	existing := filepath.Join(dir, "old.json")
	require.NoError(t, os.WriteFile(existing, []byte(`{}`), 0o600))
	require.NoError(t, os.Chmod(existing, 0o600))

	c, err := Load(existing)
	require.NoError(t, err)
	require.NoError(t, c.Set("B", "B"))
	require.NoError(t, c.Save())

	info, err = os.Stat(existing)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
