package index

import (
	"strings"
	"unicode"
)

// Normalize deletes every whitespace character (including newlines) from s.
// Deleted, not collapsed: "a b\nc" becomes "abc". Shadow fields and the live
// query both go through this, so a query typed with or without spaces lands on
// the same key material.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
