// Package textutil provides text normalization shared by the keyword
// classifier and the canned-response selector, so accented and unaccented
// spellings of the same keyword match identically.
package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	stripMarks  = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	nonAlphaNum = regexp.MustCompile(`[^a-z0-9\s]`)
	multiSpace  = regexp.MustCompile(`\s+`)
)

// Normalize strips diacritics, lowercases, removes everything outside
// [a-z0-9\s] and collapses runs of whitespace. It is total and idempotent:
// an empty string maps to an empty string and Normalize(Normalize(x)) is
// always Normalize(x).
func Normalize(text string) string {
	decomposed, _, err := transform.String(stripMarks, text)
	if err != nil {
		// Transform only fails on malformed input; matching on the raw
		// text is still better than matching on nothing.
		decomposed = text
	}

	lowered := strings.ToLower(decomposed)
	cleaned := nonAlphaNum.ReplaceAllString(lowered, "")
	return strings.TrimSpace(multiSpace.ReplaceAllString(cleaned, " "))
}

// ContainsKeyword reports whether the normalized text contains the
// normalized keyword as a substring. Matching is deliberately not
// word-boundary based: a keyword embedded inside a longer word matches.
func ContainsKeyword(text, keyword string) bool {
	return strings.Contains(Normalize(text), Normalize(keyword))
}

// ContainsAnyKeyword reports whether any keyword from the set matches.
func ContainsAnyKeyword(text string, keywords []string) bool {
	normalized := Normalize(text)
	for _, keyword := range keywords {
		if strings.Contains(normalized, Normalize(keyword)) {
			return true
		}
	}
	return false
}
