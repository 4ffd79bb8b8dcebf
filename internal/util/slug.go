package util

import (
	"strings"
	"unicode"
)

// Slugify lowercases a title and collapses everything that is not a letter
// or digit into single hyphens. Slugs are always server-generated.
func Slugify(title string) string {
	var builder strings.Builder
	builder.Grow(len(title))

	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			builder.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			builder.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(builder.String(), "-")
}
