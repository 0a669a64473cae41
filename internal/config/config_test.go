package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	d := Default()

	assert.Equal(t, []string{"__", "__n", "__l", "__h", "__mf"}, d.TranslatorFunctions)
	assert.Equal(t, []string{"logger", "console", "app"}, d.ExceptionObjectNames)
	assert.Equal(t, []string{"require"}, d.ExceptionFunctions)
	assert.False(t, d.Clean)
	assert.False(t, d.Recommend)
	require.NoError(t, d.Validate())
}

func TestApply_OverridesOnlySetFields(t *testing.T) {
	base := Default()
	base.Sources = []string{"lib/**/*.js"}

	out := "translations"
	clean := true
	got := base.Apply(Overrides{
		OutputDir: &out,
		Clean:     &clean,
	})

	assert.Equal(t, "translations", got.OutputDir)
	assert.True(t, got.Clean)
	assert.Equal(t, []string{"lib/**/*.js"}, got.Sources)
	assert.Equal(t, base.TranslatorFunctions, got.TranslatorFunctions)
	assert.Equal(t, "locales", base.OutputDir, "receiver must not change")
}

func TestApply_SliceIsCopied(t *testing.T) {
	names := []string{"t"}
	got := Default().Apply(Overrides{TranslatorFunctions: &names})

	names[0] = "changed"
	assert.Equal(t, []string{"t"}, got.TranslatorFunctions)
}

func TestApply_EmptySliceReplaces(t *testing.T) {
	none := []string{}
	got := Default().Apply(Overrides{ExceptionObjectNames: &none})

	assert.Empty(t, got.ExceptionObjectNames)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr string
	}{
		{"empty output dir", func(o *Options) { o.OutputDir = " " }, "output_dir"},
		{"bad regexp", func(o *Options) { o.HTMLTranslatorPatterns = []string{"("} }, "compile html translator pattern"},
		{"no capture group", func(o *Options) { o.HTMLTranslatorPatterns = []string{"abc"} }, "0 capture groups"},
		{"two capture groups", func(o *Options) { o.HTMLTranslatorPatterns = []string{"(a)(b)"} }, "2 capture groups"},
		{"catalog with path", func(o *Options) { o.DefaultCatalog = "sub/en.json" }, "plain .json file name"},
		{"catalog without extension", func(o *Options) { o.DefaultCatalog = "en" }, "plain .json file name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Default()
			tt.mutate(&o)
			err := o.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCompilePatterns_Default(t *testing.T) {
	res, err := Default().CompilePatterns()
	require.NoError(t, err)
	require.Len(t, res, 1)

	m := res[0].FindStringSubmatch(`<p>{{__ 'It\'s here' name}}</p>`)
	require.Len(t, m, 2)
	assert.Equal(t, `It\'s here`, m[1])
}

func TestLoad_ConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "walker.yaml")
	content := `
sources:
  - "lib/**/*.js"
  - "views/**/*.html"
output_dir: locales/out
recommend: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("I18N_WALKER_CLEAN", "true")

	opts, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"lib/**/*.js", "views/**/*.html"}, opts.Sources)
	assert.Equal(t, "locales/out", opts.OutputDir)
	assert.True(t, opts.Recommend)
	assert.True(t, opts.Clean)
	assert.Equal(t, Default().TranslatorFunctions, opts.TranslatorFunctions)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoad_InvalidPatternFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walker.yaml")
	require.NoError(t, os.WriteFile(path, []byte("html_translator_patterns: [\"no-group\"]\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestClone_SharesNoSlices(t *testing.T) {
	orig := Default()
	orig.Sources = []string{"lib/**/*.js"}

	c := orig.Clone()
	c.Sources[0] = "changed"
	c.TranslatorFunctions[0] = "changed"
	c.TextExtensions[0] = "changed"

	assert.Equal(t, []string{"lib/**/*.js"}, orig.Sources)
	assert.Equal(t, "__", orig.TranslatorFunctions[0])
	assert.Equal(t, ".txt", orig.TextExtensions[0])
}
