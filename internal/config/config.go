package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Options drives one extraction run. It is treated as immutable while a run
// is in progress; use Apply to derive a new value between runs.
type Options struct {
	// TranslatorFunctions are the call names whose first string argument is a phrase.
	TranslatorFunctions []string `mapstructure:"translator_functions"`
	// HTMLTranslatorPatterns are regular expressions with exactly one capture
	// group, applied to markup and text files.
	HTMLTranslatorPatterns []string `mapstructure:"html_translator_patterns"`
	// ExceptionObjectNames suppress detection inside calls like logger.error(...).
	ExceptionObjectNames []string `mapstructure:"exception_object_names"`
	// ExceptionFunctions suppress detection inside calls like require(...).
	ExceptionFunctions []string `mapstructure:"exception_functions"`
	// Sources are glob patterns, processed in order.
	Sources []string `mapstructure:"sources"`
	// OutputDir holds the JSON catalogs.
	OutputDir string `mapstructure:"output_dir"`
	// DefaultCatalog is the file created in OutputDir when no catalog exists yet.
	DefaultCatalog string `mapstructure:"default_catalog"`
	// Clean removes catalog keys that were not found by the scan.
	Clean bool `mapstructure:"clean"`
	// Recommend reports literals that look untranslated.
	Recommend bool `mapstructure:"recommend"`
	// DryRun computes catalog changes without writing them.
	DryRun bool `mapstructure:"dry_run"`

	SourceExtensions []string `mapstructure:"source_extensions"`
	MarkupExtensions []string `mapstructure:"markup_extensions"`
	TextExtensions   []string `mapstructure:"text_extensions"`
}

// DefaultHTMLTranslatorPattern captures the quoted argument of a {{__ '...'}}
// template helper call.
const DefaultHTMLTranslatorPattern = `(?i)\{\{__ '([^'\\]*(?:\\.[^'\\]*)*)'.*?\}\}`

// Default returns the documented defaults.
func Default() Options {
	return Options{
		TranslatorFunctions:    []string{"__", "__n", "__l", "__h", "__mf"},
		HTMLTranslatorPatterns: []string{DefaultHTMLTranslatorPattern},
		ExceptionObjectNames:   []string{"logger", "console", "app"},
		ExceptionFunctions:     []string{"require"},
		Sources:                []string{},
		OutputDir:              "locales",
		DefaultCatalog:         "default.json",
		SourceExtensions:       []string{".js", ".mjs", ".cjs", ".jsx", ".ts", ".tsx"},
		MarkupExtensions:       []string{".html", ".htm", ".hbs", ".handlebars"},
		TextExtensions:         []string{".txt"},
	}
}

// Overrides replaces Options field by field: a non-nil field wins, a nil
// field keeps the previous value.
type Overrides struct {
	TranslatorFunctions    *[]string
	HTMLTranslatorPatterns *[]string
	ExceptionObjectNames   *[]string
	ExceptionFunctions     *[]string
	Sources                *[]string
	OutputDir              *string
	DefaultCatalog         *string
	Clean                  *bool
	Recommend              *bool
	DryRun                 *bool
	SourceExtensions       *[]string
	MarkupExtensions       *[]string
	TextExtensions         *[]string
}

// Apply returns a copy of o with every field set in ov replaced.
func (o Options) Apply(ov Overrides) Options {
	applySlice(&o.TranslatorFunctions, ov.TranslatorFunctions)
	applySlice(&o.HTMLTranslatorPatterns, ov.HTMLTranslatorPatterns)
	applySlice(&o.ExceptionObjectNames, ov.ExceptionObjectNames)
	applySlice(&o.ExceptionFunctions, ov.ExceptionFunctions)
	applySlice(&o.Sources, ov.Sources)
	applySlice(&o.SourceExtensions, ov.SourceExtensions)
	applySlice(&o.MarkupExtensions, ov.MarkupExtensions)
	applySlice(&o.TextExtensions, ov.TextExtensions)

	if ov.OutputDir != nil {
		o.OutputDir = *ov.OutputDir
	}
	if ov.DefaultCatalog != nil {
		o.DefaultCatalog = *ov.DefaultCatalog
	}
	if ov.Clean != nil {
		o.Clean = *ov.Clean
	}
	if ov.Recommend != nil {
		o.Recommend = *ov.Recommend
	}
	if ov.DryRun != nil {
		o.DryRun = *ov.DryRun
	}

	return o
}

// Clone returns a copy of o that shares no slices with it.
func (o Options) Clone() Options {
	for _, s := range []*[]string{
		&o.TranslatorFunctions,
		&o.HTMLTranslatorPatterns,
		&o.ExceptionObjectNames,
		&o.ExceptionFunctions,
		&o.Sources,
		&o.SourceExtensions,
		&o.MarkupExtensions,
		&o.TextExtensions,
	} {
		if *s != nil {
			*s = append([]string(nil), (*s)...)
		}
	}
	return o
}

func applySlice(dst *[]string, src *[]string) {
	if src == nil {
		return
	}
	*dst = append([]string(nil), (*src)...)
}

// Validate checks that the options can drive a run.
func (o Options) Validate() error {
	var problems []error

	if strings.TrimSpace(o.OutputDir) == "" {
		problems = append(problems, errors.New("output_dir must not be empty"))
	}
	if strings.TrimSpace(o.DefaultCatalog) == "" {
		problems = append(problems, errors.New("default_catalog must not be empty"))
	} else if !strings.HasSuffix(o.DefaultCatalog, ".json") || strings.ContainsAny(o.DefaultCatalog, `/\`) {
		problems = append(problems, fmt.Errorf("default_catalog %q must be a plain .json file name", o.DefaultCatalog))
	}
	if _, err := o.CompilePatterns(); err != nil {
		problems = append(problems, err)
	}

	return errors.Join(problems...)
}

// CompilePatterns compiles HTMLTranslatorPatterns, rejecting any expression
// that does not have exactly one capture group.
func (o Options) CompilePatterns() ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(o.HTMLTranslatorPatterns))
	for _, p := range o.HTMLTranslatorPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile html translator pattern %q: %w", p, err)
		}
		if re.NumSubexp() != 1 {
			return nil, fmt.Errorf("html translator pattern %q has %d capture groups, want 1", p, re.NumSubexp())
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// NameSet turns a list of names into a lookup set.
func NameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
