package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// folds diacritics, e.g. "é" to "e"
var slugFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeSlug lowercases the input, folds diacritics and replaces everything
// except letters and digits by single dashes.
func NormalizeSlug(s string) string {

	s = strings.ToLower(strings.TrimSpace(s))
	if folded, _, err := transform.String(slugFolder, s); err == nil {
		s = folded
	}

	var b strings.Builder
	var dash = false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
		} else if !dash && b.Len() > 0 {
			b.WriteRune('-')
			dash = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// Trunc shortens the input to the given number of runes, cutting at a rune
// boundary. It does not care for HTML.
func Trunc(s string, maxRunes int) string {
	s = strings.TrimSpace(s)
	var n int
	for i := range s {
		if n++; n == maxRunes {
			return strings.TrimSpace(s[:i]) // the cut may expose trailing spaces
		}
	}
	return s
}
