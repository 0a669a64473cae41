package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocate(t *testing.T) {
	const src = "var a;\nvar b = 'x';\n\nz"

	tests := []struct {
		name   string
		offset int
		want   Position
	}{
		{"start of file", 0, Position{Line: 1, Column: 0}},
		{"inside first line", 4, Position{Line: 1, Column: 4}},
		{"on the first newline", 6, Position{Line: 1, Column: 6}},
		{"start of second line", 7, Position{Line: 2, Column: 0}},
		{"quote on second line", 15, Position{Line: 2, Column: 8}},
		{"empty third line", 20, Position{Line: 3, Column: 0}},
		{"last char", 21, Position{Line: 4, Column: 0}},
		{"end of text", 22, Position{Line: 4, Column: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Locate(src, tt.offset)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocate_NoNewline(t *testing.T) {
	got, ok := Locate("__('Hello')", 3)
	assert.True(t, ok)
	assert.Equal(t, Position{Line: 1, Column: 3}, got)
}

func TestLocate_OutOfRange(t *testing.T) {
	_, ok := Locate("abc", 4)
	assert.False(t, ok)

	_, ok = Locate("abc", -1)
	assert.False(t, ok)
}

func TestLocate_CountsCharacters(t *testing.T) {
	// "čć" is four bytes but two characters.
	got, ok := Locate("x\nčć'a'", len("x\nčć"))
	assert.True(t, ok)
	assert.Equal(t, Position{Line: 2, Column: 2}, got)
}

func TestLocate_FirstLineColumnIsOffset(t *testing.T) {
	for _, src := range []string{"ab'cd'", "ab'cd'\nnext"} {
		got, ok := Locate(src, 2)
		assert.True(t, ok)
		assert.Equal(t, Position{Line: 1, Column: 2}, got, src)
	}
}
