package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Task content is rich text, restricted to basic formatting plus colored
// spans. Everything else, scripts included, is stripped before storage.
var contentPolicy = newContentPolicy()

func newContentPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "b", "strong", "i", "em", "span", "br")
	p.AllowStyles("color").OnElements("span")
	return p
}

// Content reduces raw rich-text input to the allowed markup.
func Content(raw string) string {
	return contentPolicy.Sanitize(raw)
}

// IsEmpty reports whether sanitized content carries no visible text.
func IsEmpty(sanitized string) bool {
	stripped := bluemonday.StrictPolicy().Sanitize(sanitized)
	return strings.TrimSpace(stripped) == ""
}
