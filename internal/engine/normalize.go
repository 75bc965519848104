// Package engine implements the catalog search core: string normalization,
// edit-distance fuzzy matching, field-weighted relevance scoring, ranking,
// and the searchable item index.
package engine

import (
	"strings"
	"unicode"
)

// Normalize prepares text for matching: lower-cases, trims, strips all runes
// that are not letters, digits, or underscore, and collapses whitespace runs
// to a single space. Pure and idempotent; empty input yields empty output.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		}
		// Anything else (punctuation, symbols) is dropped.
	}
	return b.String()
}
