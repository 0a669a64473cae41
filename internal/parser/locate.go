package parser

import (
	"strings"
	"unicode/utf8"
)

// Position is a 1-based line and 0-based character column.
type Position struct {
	Line   int
	Column int
}

// Locate maps a byte offset into content to a line and column. The line is
// one more than the number of newlines strictly before offset; the column
// counts the characters between the preceding newline and offset. On line 1
// that is the character count from the start of content, so for ASCII text
// the column equals offset. ok is false when offset lies outside content.
func Locate(content string, offset int) (pos Position, ok bool) {
	if offset < 0 || offset > len(content) {
		return Position{}, false
	}

	before := content[:offset]
	prev := strings.LastIndexByte(before, '\n')

	return Position{
		Line:   strings.Count(before, "\n") + 1,
		Column: utf8.RuneCountInString(before[prev+1:]),
	}, true
}
