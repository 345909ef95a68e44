package form

import (
	"regexp"
	"strings"
)

// Field error reasons.
const (
	ReasonMissing   = "MISSING"
	ReasonTooLong   = "TOO_LONG"
	ReasonMalformed = "MALFORMED"
)

// FieldError reports one violation on one field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Exactly one @, non-empty local part, at least one dot in the domain.
var emailRe = regexp.MustCompile(`^[^@]+@[^@]*\.[^@]*$`)

// Validate checks raw against the schema and accumulates every violation
// in one pass. On success it returns the trimmed field values keyed by
// field name; fields absent from the schema are ignored. Pure: no side
// effects, safe to call concurrently.
func (s Schema) Validate(raw map[string]any) (map[string]string, []FieldError) {
	fields := make(map[string]string, len(s.Fields))
	var errs []FieldError

	for _, f := range s.Fields {
		v, ok := raw[f.Name]
		if !ok || v == nil {
			if f.Required {
				errs = append(errs, FieldError{Field: f.Name, Reason: ReasonMissing})
			}
			continue
		}

		str, ok := v.(string)
		if !ok {
			errs = append(errs, FieldError{Field: f.Name, Reason: ReasonMalformed})
			continue
		}

		str = strings.TrimSpace(str)
		if str == "" {
			if f.Required {
				errs = append(errs, FieldError{Field: f.Name, Reason: ReasonMissing})
			}
			continue
		}

		if f.MaxLen > 0 && len(str) > f.MaxLen {
			errs = append(errs, FieldError{Field: f.Name, Reason: ReasonTooLong})
			continue
		}

		if f.Format == FormatEmail && !emailRe.MatchString(str) {
			errs = append(errs, FieldError{Field: f.Name, Reason: ReasonMalformed})
			continue
		}

		fields[f.Name] = str
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return fields, nil
}
