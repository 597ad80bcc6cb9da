package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Learn Rust", "Learn Rust"},
		{"trims", "  Learn Rust \n", "Learn Rust"},
		{"strips tags", "<b>Learn</b> Rust", "Learn Rust"},
		{"drops script", `<script>alert(1)</script>Learn`, "Learn"},
		{"drops handlers", `<img src=x onerror=alert(1)>Learn`, "Learn"},
		{"keeps ampersand", "Q&A prep", "Q&A prep"},
		{"keeps comparison", "score > 90", "score > 90"},
		{"escaped tag", "&lt;img src=x onerror=alert(1)&gt;Learn", "Learn"},
		{"double escaped tag", "&amp;lt;b&amp;gt;Learn", "Learn"},
		{"escaped ampersand kept", "R&amp;D", "R&D"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Text(tc.in)
			assert.Equal(t, tc.want, got)
			assert.NotContains(t, got, "<img")
			assert.NotContains(t, got, "<b>")
		})
	}
}

func TestText_DeeplyEscapedNeverYieldsTags(t *testing.T) {
	in := "<b>x</b>"
	for i := 0; i < 12; i++ {
		in = strings.ReplaceAll(in, "&", "&amp;")
		in = strings.ReplaceAll(strings.ReplaceAll(in, "<", "&lt;"), ">", "&gt;")
	}
	got := Text(in)
	assert.NotContains(t, got, "<")
	assert.NotContains(t, got, ">")
}
