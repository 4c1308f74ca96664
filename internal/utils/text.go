package utils

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Fold lower-cases s after NFC normalization so that visually identical
// strings compare equal regardless of how they were composed.
func Fold(s string) string {
	return cases.Lower(language.Und).String(norm.NFC.String(s))
}

// RuneLen returns the number of characters in s.
func RuneLen(s string) int { return utf8.RuneCountInString(s) }

// Truncate shortens s to at most limit characters, marking the cut with "...".
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}
