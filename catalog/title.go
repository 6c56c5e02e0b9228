package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Title turns a registry key into a display title: separators become
// spaces and the first letter is upper-cased.
//
//	christmas-dinner -> Christmas dinner
func Title(key string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(key)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
