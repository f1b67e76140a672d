package httpvalidator

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseQuery splits a raw query string into a flat name to value mapping.
//
// Pairs are separated by '&' and split on the first '='. Names and values
// are decoded with '+' as space and %XX escapes; malformed escapes are kept
// as literal text. Pairs without '=' or with an empty value are dropped, and
// when a name repeats the last value wins. A leading '?' is ignored.
func ParseQuery(rawQuery string) map[string]string {
	rawQuery = strings.TrimPrefix(rawQuery, "?")
	out := make(map[string]string)
	for pair := range strings.SplitSeq(rawQuery, "&") {
		if pair == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		if !ok || value == "" {
			continue
		}
		out[unescapeQuery(name)] = unescapeQuery(value)
	}
	return out
}

// CoerceQuery converts query values that consist solely of ASCII digits
// into int64. Every other value, including digit strings too large for an
// int64, is kept as a string. Keys pass through unchanged.
//
// The rule is applied regardless of the type a parameter declares, so a
// string parameter sent as "1234" is validated as the integer 1234.
func CoerceQuery(params map[string]string) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = coerceValue(v)
	}
	return out
}

func coerceValue(s string) any {
	if !isDigits(s) {
		return s
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return s
	}
	return n
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// unescapeQuery decodes s leniently: '+' becomes a space, valid %XX escapes
// are decoded, and anything else is copied through. Invalid UTF-8 produced
// by decoding is replaced with U+FFFD.
func unescapeQuery(s string) string {
	if !strings.ContainsAny(s, "+%") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	out := b.String()
	if !utf8.ValidString(out) {
		out = strings.ToValidUTF8(out, "�")
	}
	return out
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
