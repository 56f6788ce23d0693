package render

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// printable composes decomposed accents (NFC) so they map to the font's
// precomposed glyphs, turns control characters other than newline into
// spaces and replaces runes outside the Basic Multilingual Plane, which the
// UTF-8 font tables do not index, with '?'.
func printable(s string) string {
	t := transform.Chain(
		norm.NFC,
		runes.Map(func(r rune) rune {
			switch {
			case r == '\n':
				return r
			case r == '\t', unicode.IsControl(r):
				return ' '
			case r > 0xFFFF:
				return '?'
			}
			return r
		}),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
