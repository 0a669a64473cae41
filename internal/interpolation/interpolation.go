package interpolation

import (
	"regexp"
	"strings"
)

// spanPatterns detect template interpolation spans left in markup text once
// the translator tags themselves have been removed.
var spanPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\{\{.*\}\}`), // {{value}}, {{#if x}} ... {{/if}} on one line
}

// leadingBlank matches the blank space at the start of every line, including
// whole blank lines.
var leadingBlank = regexp.MustCompile(`(?m)^\s*`)

// Strip removes interpolation spans together with their contents, then the
// leading blank space of every remaining line.
func Strip(text string) string {
	for _, p := range spanPatterns {
		text = p.ReplaceAllString(text, "")
	}
	return leadingBlank.ReplaceAllString(text, "")
}

// HasFragment reports whether line still carries part of an interpolation
// span, e.g. an opening brace pair whose closing pair is on another line.
func HasFragment(line string) bool {
	return strings.Contains(line, "{{") || strings.Contains(line, "}}")
}
