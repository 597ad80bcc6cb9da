// Package sanitize strips markup from user-entered text before it is stored.
// Goal titles and profile fields were rendered straight into innerHTML by the
// web client, so nothing that reaches the store may carry tags.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

const maxPasses = 8

// Text removes every HTML element and returns the remaining plain text, trimmed.
// Entities are unescaped so the stored text is what the user typed minus the
// tags. Unescaping can reveal markup (&lt;b&gt;), so sanitize and unescape
// repeat until the text stops changing.
func Text(s string) string {
	if s == "" {
		return ""
	}
	out := s
	for i := 0; i < maxPasses; i++ {
		next := html.UnescapeString(strict.Sanitize(out))
		if next == out {
			return strings.TrimSpace(out)
		}
		out = next
	}
	// still changing: keep the escaped form, which carries no tags
	return strings.TrimSpace(strict.Sanitize(out))
}
