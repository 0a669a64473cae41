package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnquoteJS(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain single", `'Hello World'`, "Hello World"},
		{"plain double", `"Hello"`, "Hello"},
		{"escaped quote", `'It\'s'`, "It's"},
		{"escaped backslash", `'a\\b'`, `a\b`},
		{"newline and tab", `'a\nb\tc'`, "a\nb\tc"},
		{"hex", `'\x41'`, "A"},
		{"unicode", `'\u010d'`, "č"},
		{"unicode braces", `'\u{1F600}'`, "😀"},
		{"surrogate pair", `'\uD83D\uDE00'`, "😀"},
		{"line continuation", "'a\\\nb'", "ab"},
		{"unknown escape", `'\q'`, "q"},
		{"bad hex kept", `'\xZZ'`, "xZZ"},
		{"empty", `''`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, unquoteJS(tt.raw))
		})
	}
}
