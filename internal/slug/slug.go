// Package slug derives URL-safe identifiers from post content.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// sourceLimit is how many leading runes of the source text feed the slug.
const sourceLimit = 30

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make lowercases s, strips diacritics, and collapses every run of
// non-alphanumeric characters into a single hyphen.
func Make(s string) string {
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// FromContent builds a post slug from the first 30 runes of the body, falling
// back to the title for body-less posts. Slugs are not unique: two posts with
// the same opening text share a slug, which is why posts are addressed by
// (id, slug) rather than slug alone.
func FromContent(body, title string) string {
	source := body
	if strings.TrimSpace(source) == "" {
		source = title
	}
	return Make(truncateRunes(source, sourceLimit))
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
