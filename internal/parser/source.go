package parser

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"i18n-walker/internal/config"
	"i18n-walker/internal/errs"
	"i18n-walker/internal/textutil"

	"github.com/ef-ds/deque"
	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// SourceParser extracts phrases from JavaScript and TypeScript sources by
// walking their tree-sitter syntax tree.
type SourceParser struct {
	extensions       []string
	translators      map[string]struct{}
	exceptionObjects map[string]struct{}
	exceptionFuncs   map[string]struct{}
	recommend        bool

	typescript *sitter.Language
	tsx        *sitter.Language
}

// NewSourceParser creates a SourceParser configured by opts.
func NewSourceParser(opts config.Options) *SourceParser {
	return &SourceParser{
		extensions:       opts.SourceExtensions,
		translators:      config.NameSet(opts.TranslatorFunctions),
		exceptionObjects: config.NameSet(opts.ExceptionObjectNames),
		exceptionFuncs:   config.NameSet(opts.ExceptionFunctions),
		recommend:        opts.Recommend,
		typescript:       sitter.NewLanguage(typescript.LanguageTypescript()),
		tsx:              sitter.NewLanguage(typescript.LanguageTSX()),
	}
}

func (p *SourceParser) CanParse(ext string) bool {
	return hasExt(p.extensions, ext)
}

// languageFor picks the grammar for a file. Plain TypeScript cannot read JSX,
// so everything except .ts goes through the TSX grammar, which is a superset
// of JavaScript with JSX.
func (p *SourceParser) languageFor(filePath string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".ts", ".mts", ".cts":
		return p.typescript
	default:
		return p.tsx
	}
}

// Parse scans one source file. A file the grammar cannot accept is reported
// as *errs.ParseError.
func (p *SourceParser) Parse(filePath string, content []byte, known Lookup) (*ParseResult, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(p.languageFor(filePath)); err != nil {
		return nil, fmt.Errorf("set parser language: %w", err)
	}

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, &errs.ParseError{File: filePath, Line: 1}
	}
	defer tree.Close()

	root := tree.RootNode()
	text := string(content)

	if root.HasError() {
		return nil, syntaxError(filePath, text, content, root)
	}

	scan := &sourceScan{
		parser:  p,
		file:    filePath,
		content: content,
		text:    text,
		known:   known,
		local:   make(map[string]struct{}),
		zones:   deque.New(),
		result: &ParseResult{
			FilePath: filePath,
			FileType: "source",
		},
	}
	scan.visit(root)

	return scan.result, nil
}

// syntaxError builds a ParseError pointing at the first ERROR or MISSING node.
func syntaxError(filePath, text string, content []byte, root *sitter.Node) error {
	bad := firstErrorNode(root)
	if bad == nil {
		bad = root
	}

	pe := &errs.ParseError{File: filePath, Line: 1}
	if pos, ok := Locate(text, int(bad.StartByte())); ok {
		pe.Line = pos.Line
		pe.Column = pos.Column
	}
	if bad.IsMissing() {
		pe.Near = "missing " + bad.Kind()
	} else {
		pe.Near = textutil.Truncate(bad.Utf8Text(content), 20)
	}
	return pe
}

func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil || !child.HasError() && !child.IsMissing() {
			continue
		}
		if bad := firstErrorNode(child); bad != nil {
			return bad
		}
	}
	return nil
}

// sourceScan is the per-file traversal state.
type sourceScan struct {
	parser  *SourceParser
	file    string
	content []byte
	text    string
	known   Lookup
	// local holds phrases found earlier in this file.
	local map[string]struct{}
	// zones is a stack of node ids that opened a suppression scope.
	zones  *deque.Deque
	result *ParseResult
}

// visit walks the tree depth first with paired enter and leave calls.
func (s *sourceScan) visit(n *sitter.Node) {
	s.enter(n)
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if child := n.NamedChild(i); child != nil {
			s.visit(child)
		}
	}
	s.leave(n)
}

func (s *sourceScan) enter(n *sitter.Node) {
	switch n.Kind() {
	case "call_expression":
		if s.isException(n) {
			s.zones.PushBack(n.Id())
			return
		}
	case "import_statement":
		s.zones.PushBack(n.Id())
		return
	}

	if s.zones.Len() > 0 {
		return
	}

	switch n.Kind() {
	case "call_expression":
		s.checkTranslatorCall(n)
	case "string":
		s.checkLiteral(n)
	}
}

func (s *sourceScan) leave(n *sitter.Node) {
	if top, ok := s.zones.Back(); ok && top.(uintptr) == n.Id() {
		s.zones.PopBack()
	}
}

// isException reports calls like logger.error(...) or require(...).
func (s *sourceScan) isException(call *sitter.Node) bool {
	callee := call.ChildByFieldName("function")
	if callee == nil {
		return false
	}

	switch callee.Kind() {
	case "member_expression":
		obj := callee.ChildByFieldName("object")
		if obj == nil || obj.Kind() != "identifier" {
			return false
		}
		_, ok := s.parser.exceptionObjects[obj.Utf8Text(s.content)]
		return ok
	case "identifier":
		_, ok := s.parser.exceptionFuncs[callee.Utf8Text(s.content)]
		return ok
	}
	return false
}

func (s *sourceScan) checkTranslatorCall(call *sitter.Node) {
	callee := call.ChildByFieldName("function")
	if callee == nil || callee.Kind() != "identifier" {
		return
	}
	if _, ok := s.parser.translators[callee.Utf8Text(s.content)]; !ok {
		return
	}

	arg := firstArgument(call)
	if arg == nil || arg.Kind() != "string" {
		return
	}

	phrase := unquoteJS(arg.Utf8Text(s.content))
	s.local[phrase] = struct{}{}

	et := ExtractedText{Text: phrase, File: s.file, Column: -1}
	if pos, ok := Locate(s.text, int(arg.StartByte())); ok {
		et.Line = pos.Line
		et.Column = pos.Column
	}
	s.result.Texts = append(s.result.Texts, et)
}

// firstArgument returns the first argument of a call, skipping comments.
// Tagged templates have no argument list and yield nil.
func firstArgument(call *sitter.Node) *sitter.Node {
	args := call.ChildByFieldName("arguments")
	if args == nil || args.Kind() != "arguments" {
		return nil
	}
	for i := uint(0); i < args.NamedChildCount(); i++ {
		arg := args.NamedChild(i)
		if arg != nil && arg.Kind() != "comment" {
			return arg
		}
	}
	return nil
}

// checkLiteral reports single-quoted literals that were not seen as phrases.
func (s *sourceScan) checkLiteral(str *sitter.Node) {
	if !s.parser.recommend {
		return
	}

	raw := str.Utf8Text(s.content)
	if !strings.HasPrefix(raw, "'") {
		return
	}

	value := unquoteJS(raw)
	if utf8.RuneCountInString(value) < 2 {
		return
	}
	if _, ok := s.local[value]; ok {
		return
	}
	if s.known != nil && s.known.Has(value) {
		return
	}

	d := Diagnostic{Kind: KindLiteral, File: s.file, Text: value}
	if pos, ok := Locate(s.text, int(str.StartByte())); ok {
		d.Line = pos.Line
		d.Column = pos.Column
	}
	s.result.Diagnostics = append(s.result.Diagnostics, d)
}
