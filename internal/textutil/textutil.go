// Package textutil holds the small text and value coercion helpers shared
// by the form generator and the score importer.
package textutil

import (
	"strconv"
	"strings"
)

// Collapse trims a string and collapses every internal whitespace run to a
// single space.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FoldKey normalizes a string for use in an identity key: case-folded and
// whitespace-collapsed.
func FoldKey(s string) string {
	return strings.ToLower(Collapse(s))
}

// ParseNumber parses a numeric cell value, tolerating surrounding
// whitespace. The second return is false when the text is not numeric.
func ParseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// filenameReplacer strips characters that are illegal in file names on at
// least one mainstream filesystem.
var filenameReplacer = strings.NewReplacer(
	"/", "", "\\", "", ":", "", "*", "", "?", "",
	"\"", "", "<", "", ">", "", "|", "",
)

// SanitizeFilename removes illegal filename characters and trims the rest.
func SanitizeFilename(s string) string {
	return strings.TrimSpace(filenameReplacer.Replace(s))
}

// TruncateRunes shortens s to at most n runes.
func TruncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// StripSuffixFold removes suffix from s if s ends with it, comparing
// case-insensitively, and trims the remainder.
func StripSuffixFold(s, suffix string) string {
	if len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix) {
		return strings.TrimSpace(s[:len(s)-len(suffix)])
	}
	return strings.TrimSpace(s)
}
