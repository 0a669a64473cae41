package parser

// ExtractedText is a phrase found in a file.
type ExtractedText struct {
	// Text is the phrase, used as both catalog key and initial value.
	Text string
	// File is the source file path.
	File string
	// Line is the 1-based line number of the phrase.
	Line int
	// Column is the 0-based character column (-1 if not applicable).
	Column int
}

// DiagnosticKind tells where an advisory diagnostic came from.
type DiagnosticKind string

const (
	// KindLiteral is an unguarded string literal in program source.
	KindLiteral DiagnosticKind = "literal"
	// KindMarkupText is a bare text node in markup.
	KindMarkupText DiagnosticKind = "markup-text"
)

// Diagnostic flags text that looks like it is missing a translator call.
// It is advisory only and never changes a catalog.
type Diagnostic struct {
	Kind DiagnosticKind
	File string
	// Line and Column locate source literals (Line is 0 when unknown).
	Line   int
	Column int
	// Counter numbers markup diagnostics within one file, starting at 1.
	Counter int
	Text    string
}

// ParseResult holds parsing output for a single file.
type ParseResult struct {
	// FilePath is the path of the parsed file.
	FilePath string
	// FileType is the scanner mode used (source, markup, text).
	FileType string
	// Texts are the phrases found, in file order, possibly repeated.
	Texts []ExtractedText
	// Diagnostics are only filled in recommend mode.
	Diagnostics []Diagnostic
}

// Lookup answers whether a phrase is already known from earlier files of the
// same run.
type Lookup interface {
	Has(phrase string) bool
}

// Parser is the interface for all file format scanners.
type Parser interface {
	// CanParse returns true if this parser handles the given file extension.
	CanParse(ext string) bool
	// Parse extracts phrases and diagnostics from the content of one file.
	// known may be nil.
	Parse(filePath string, content []byte, known Lookup) (*ParseResult, error)
}

// hasExt reports whether ext is one of exts.
func hasExt(exts []string, ext string) bool {
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}
