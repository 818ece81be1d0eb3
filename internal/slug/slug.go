// Package slug derives stable URL-safe identifiers from keyword strings.
package slug

import (
	"strings"
	"unicode"
)

// MaxLen is the maximum slug length. Longer keywords truncate; two distinct
// keywords that truncate to the same slug are rejected at the store boundary
// rather than silently overwritten.
const MaxLen = 60

// Make converts a keyword into its slug: lowercase, characters outside
// [a-z0-9\s-] stripped, whitespace runs collapsed to single hyphens, repeated
// hyphens collapsed, leading/trailing hyphens trimmed, truncated to MaxLen.
// It is a pure function: the same keyword always yields the same slug.
func Make(keyword string) string {
	lowered := strings.ToLower(keyword)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '-':
			b.WriteByte('-')
		}
	}

	s := b.String()
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")

	if len(s) > MaxLen {
		s = s[:MaxLen]
		s = strings.TrimRight(s, "-")
	}
	return s
}
