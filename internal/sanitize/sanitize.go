// Package sanitize cleans user-supplied text before it is stored or
// rendered. Palette names and descriptions come straight from form fields;
// bluemonday strips any markup so the swatch renderer's unescaped string
// backend can never be reached with attacker-controlled HTML.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// strict is the singleton bluemonday policy for plain-text fields.
// Initialized once via sync.Once for thread-safe lazy initialization.
var (
	strict     *bluemonday.Policy
	strictOnce sync.Once
)

// strictPolicy returns the shared policy, initializing it on first call.
func strictPolicy() *bluemonday.Policy {
	strictOnce.Do(func() {
		// StrictPolicy strips all HTML elements and attributes; only text
		// nodes survive.
		strict = bluemonday.StrictPolicy()
	})
	return strict
}

// Text reduces input to plain text: all HTML elements and attributes are
// stripped and surrounding whitespace is trimmed.
//
// This MUST be called on every user-provided name, label, and description
// before storing it in the database. Palette text is rendered inside templ
// components (which escape) and next to raw swatch markup (which does not),
// so stored values have to be markup-free.
func Text(input string) string {
	return strings.TrimSpace(strictPolicy().Sanitize(input))
}
