package errs

import "fmt"

// ParseError reports a source file the syntax parser could not accept.
// It is fatal for the run.
type ParseError struct {
	File   string
	Line   int
	Column int
	Near   string
}

func (e *ParseError) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("parse %s:%d:%d: syntax error", e.File, e.Line, e.Column)
	}
	return fmt.Sprintf("parse %s:%d:%d: syntax error near %q", e.File, e.Line, e.Column, e.Near)
}

// EnumerationError reports a failed glob expansion or catalog listing.
// It is fatal for the run.
type EnumerationError struct {
	Pattern string
	Err     error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("enumerate %q: %v", e.Pattern, e.Err)
}

func (e *EnumerationError) Unwrap() error { return e.Err }
