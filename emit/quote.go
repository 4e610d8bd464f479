package emit

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// NeedsQuote reports whether v cannot be written as a plain scalar.
func NeedsQuote(v string) bool {
	if v == "" {
		return true
	}
	switch v[0] {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
		'-', '?', ':', ',', '[', ']', '{', '}', '#', '&', '*',
		'!', '|', '>', '\'', '"', '%', '@', '`', ' ', '~':
		return true
	}
	if strings.HasSuffix(v, " ") {
		return true
	}
	if strings.Contains(v, ": ") || strings.Contains(v, " #") {
		return true
	}
	for _, r := range v {
		if r == '\n' || r == '\t' || unicode.IsControl(r) {
			return true
		}
	}
	switch strings.ToLower(v) {
	case "true", "false", "null", "yes", "no", "on", "off":
		return true
	}
	return false
}

// quoteAuto picks single quoting when v needs no escapes, double
// otherwise.
func quoteAuto(v string) string {
	if s, ok := quoteSingle(v); ok {
		return s
	}
	return quoteDouble(v, false)
}

// quoteSingle renders v in single quotes, doubling embedded quotes.
// It reports false when v holds characters single quoting cannot carry.
func quoteSingle(v string) (string, bool) {
	for _, r := range v {
		if r == '\n' || unicode.IsControl(r) {
			return "", false
		}
	}
	return "'" + strings.ReplaceAll(v, "'", "''") + "'", true
}

// quoteDouble renders v in double quotes with backslash escapes. When
// escapeNonASCII is set, runes past ASCII are written as \uXXXX or
// \UXXXXXXXX escapes.
func quoteDouble(v string, escapeNonASCII bool) string {
	d := make([]byte, 1, len(v)+2)
	d[0] = '"'
	for _, r := range v {
		switch r {
		case '"':
			d = append(d, '\\', '"')
		case '\\':
			d = append(d, '\\', '\\')
		case '\b':
			d = append(d, '\\', 'b')
		case '\f':
			d = append(d, '\\', 'f')
		case '\n':
			d = append(d, '\\', 'n')
		case '\r':
			d = append(d, '\\', 'r')
		case '\t':
			d = append(d, '\\', 't')
		default:
			switch {
			case unicode.IsControl(r):
				d = append(d, fmt.Sprintf("\\u%04x", r)...)
			case escapeNonASCII && r > unicode.MaxASCII:
				if r > 0xffff {
					d = append(d, fmt.Sprintf("\\U%08x", r)...)
				} else {
					d = append(d, fmt.Sprintf("\\u%04x", r)...)
				}
			default:
				d = utf8.AppendRune(d, r)
			}
		}
	}
	d = append(d, '"')
	return string(d)
}

func isASCII(v string) bool {
	for i := 0; i < len(v); i++ {
		if v[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}
