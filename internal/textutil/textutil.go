package textutil

import (
	"regexp"
	"unicode/utf8"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CollapseWhitespace replaces every run of spaces, tabs and newlines with a
// single space. Markup does not distinguish between them, so a phrase spread
// over several template lines maps to one catalog key.
func CollapseWhitespace(s string) string {
	return whitespaceRun.ReplaceAllString(s, " ")
}

// Truncate shortens a string to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + "..."
}
