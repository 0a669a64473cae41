package parser

import (
	"bytes"
	"regexp"
	"strings"

	"i18n-walker/internal/config"
	"i18n-walker/internal/interpolation"
	"i18n-walker/internal/textutil"

	"golang.org/x/net/html"
)

// executableScriptTypes are the script type attribute values whose content
// is code rather than text. An absent type is executable as well.
var executableScriptTypes = map[string]bool{
	"":                         true,
	"text/javascript":          true,
	"application/javascript":   true,
	"text/ecmascript":          true,
	"application/ecmascript":   true,
	"application/x-javascript": true,
	"module":                   true,
}

// MarkupParser extracts phrases from template markup and plain text using
// the configured translator patterns. In markup mode it also tokenizes the
// remaining HTML to report bare text nodes.
type MarkupParser struct {
	extensions []string
	patterns   []*regexp.Regexp
	recommend  bool
	textOnly   bool
}

// NewMarkupParser creates a parser for markup files.
func NewMarkupParser(opts config.Options) (*MarkupParser, error) {
	patterns, err := opts.CompilePatterns()
	if err != nil {
		return nil, err
	}
	return &MarkupParser{
		extensions: opts.MarkupExtensions,
		patterns:   patterns,
		recommend:  opts.Recommend,
	}, nil
}

// NewTextParser creates a parser for plain-text files. It only applies the
// translator patterns.
func NewTextParser(opts config.Options) (*MarkupParser, error) {
	patterns, err := opts.CompilePatterns()
	if err != nil {
		return nil, err
	}
	return &MarkupParser{
		extensions: opts.TextExtensions,
		patterns:   patterns,
		textOnly:   true,
	}, nil
}

func (p *MarkupParser) CanParse(ext string) bool {
	return hasExt(p.extensions, ext)
}

// Parse never fails on malformed markup; the error return exists to satisfy
// Parser.
func (p *MarkupParser) Parse(filePath string, content []byte, _ Lookup) (*ParseResult, error) {
	text := string(content)

	result := &ParseResult{
		FilePath: filePath,
		FileType: "markup",
	}
	if p.textOnly {
		result.FileType = "text"
	}

	for _, re := range p.patterns {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			if loc[2] < 0 {
				continue
			}
			et := ExtractedText{
				Text:   textutil.CollapseWhitespace(text[loc[2]:loc[3]]),
				File:   filePath,
				Column: -1,
			}
			if pos, ok := Locate(text, loc[0]); ok {
				et.Line = pos.Line
				et.Column = pos.Column
			}
			result.Texts = append(result.Texts, et)
		}
	}

	if p.textOnly || !p.recommend {
		return result, nil
	}

	// Translator tags are already handled; drop them so their text is not
	// reported again.
	for _, re := range p.patterns {
		text = re.ReplaceAllString(text, "")
	}

	result.Diagnostics = p.scanText(filePath, text)
	return result, nil
}

// scanText tokenizes markup and reports bare text outside executable scripts.
func (p *MarkupParser) scanText(filePath, markup string) []Diagnostic {
	var diags []Diagnostic
	counter := 0
	// skipping is set inside executable scripts and style sheets.
	skipping := false

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a tokenizer failure; either way there is nothing more to read.
			return diags

		case html.StartTagToken:
			name, hasAttr := z.TagName()
			switch string(name) {
			case "script":
				skipping = executableScriptTypes[scriptType(z, hasAttr)]
			case "style":
				skipping = true
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if n := string(name); n == "script" || n == "style" {
				skipping = false
			}

		case html.TextToken:
			if skipping {
				continue
			}
			for _, line := range bareLines(string(z.Text())) {
				counter++
				diags = append(diags, Diagnostic{
					Kind:    KindMarkupText,
					File:    filePath,
					Counter: counter,
					Text:    line,
				})
			}
		}
	}
}

// scriptType returns the lower-cased type attribute of the current tag.
func scriptType(z *html.Tokenizer, hasAttr bool) string {
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		if string(key) == "type" {
			return strings.ToLower(string(bytes.TrimSpace(val)))
		}
	}
	return ""
}

// bareLines splits a text node into the lines that look like untranslated
// text: template spans and leading blank space are removed first, and lines
// still holding part of a template span are skipped.
func bareLines(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var lines []string
	for _, line := range strings.Split(interpolation.Strip(text), "\n") {
		if line == "" || interpolation.HasFragment(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
