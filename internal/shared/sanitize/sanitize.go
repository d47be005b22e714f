// Package sanitize strips markup from free text arriving from external
// registries before it is persisted.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes all HTML elements from s, decodes entities and collapses
// surrounding whitespace. External abstract text occasionally carries
// markup fragments; the catalogue stores plain text only.
func Text(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
