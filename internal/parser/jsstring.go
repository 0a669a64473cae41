package parser

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// unquoteJS decodes the raw text of a JavaScript string literal, quotes
// included, into its value. Unknown escapes decode to the escaped character,
// as JavaScript does.
func unquoteJS(raw string) string {
	if len(raw) >= 2 {
		raw = raw[1 : len(raw)-1]
	}
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}

	var b strings.Builder
	b.Grow(len(raw))

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 == len(raw) {
			b.WriteByte(c)
			continue
		}

		i++
		switch raw[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation
		case '\r':
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
		case 'x':
			if r, ok := parseHex(raw, i+1, 2); ok {
				b.WriteRune(r)
				i += 2
			} else {
				b.WriteByte('x')
			}
		case 'u':
			r, n := decodeUnicodeEscape(raw, i+1)
			if n == 0 {
				b.WriteByte('u')
				continue
			}
			i += n
			// A high surrogate may pair with a following \uXXXX low surrogate.
			if utf16.IsSurrogate(r) && i+2 < len(raw) && raw[i+1] == '\\' && raw[i+2] == 'u' {
				if lo, m := decodeUnicodeEscape(raw, i+3); m > 0 {
					if pair := utf16.DecodeRune(r, lo); pair != utf8.RuneError {
						r = pair
						i += 2 + m
					}
				}
			}
			b.WriteRune(r)
		default:
			// \' \" \\ and any other escaped character stand for themselves.
			_, size := utf8.DecodeRuneInString(raw[i:])
			b.WriteString(raw[i : i+size])
			i += size - 1
		}
	}

	return b.String()
}

// decodeUnicodeEscape decodes the part of a \u escape that follows the "u",
// either XXXX or {X...}. It returns the rune and the number of bytes used.
func decodeUnicodeEscape(s string, at int) (rune, int) {
	if at < len(s) && s[at] == '{' {
		end := strings.IndexByte(s[at:], '}')
		if end < 2 {
			return 0, 0
		}
		if r, ok := parseHex(s, at+1, end-1); ok && r <= utf8.MaxRune {
			return r, end + 1
		}
		return 0, 0
	}
	if r, ok := parseHex(s, at, 4); ok {
		return r, 4
	}
	return 0, 0
}

func parseHex(s string, at, n int) (rune, bool) {
	if at+n > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[at:at+n], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}
