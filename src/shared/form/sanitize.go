package form

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Strict policy: strips every element and escapes the remaining text
// (<, >, &, ", '). Entity output survives re-sanitization unchanged, so
// Sanitize is idempotent. Safe for concurrent use once built.
var strict = bluemonday.StrictPolicy()

// Sanitize trims every field and HTML-escapes the ones the schema marks
// Escape. Fields without a schema entry pass through trimmed.
func (s Schema) Sanitize(fields map[string]string) map[string]string {
	escape := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		escape[f.Name] = f.Escape
	}

	out := make(map[string]string, len(fields))
	for name, v := range fields {
		v = strings.TrimSpace(v)
		if escape[name] {
			// Stripping markup can expose inner edge whitespace
			// ("<b> hi </b>" -> " hi "), so trim again after.
			v = strings.TrimSpace(strict.Sanitize(v))
		}
		out[name] = v
	}
	return out
}
