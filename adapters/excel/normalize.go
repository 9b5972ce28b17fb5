package excel

import (
	"strings"
)

// NormalizeHeader canonicalizes a header cell for matching: lowercase,
// invisible unicode stripped, brackets and periods dropped, separators and
// whitespace runs collapsed to single spaces.
//
// "Inflation Pressure (bar)" -> "inflation pressure bar"
// "No. of Tests"             -> "no of tests"
func NormalizeHeader(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		switch r {
		case '\u200b', '\u200c', '\u200d', '\ufeff':
			// zero-width characters and BOMs leak in from copy-pasted headers
		case '\u00a0':
			b.WriteRune(' ')
		case '(', ')', '[', ']', '{', '}', '.':
			// brackets and periods carry no meaning for matching
		case '_', '-', '/':
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// stripNewlines flattens multi-line cell text into a single line.
func stripNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(s)
}
