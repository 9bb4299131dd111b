// Package validation implements client-side, pre-network input validation:
// field-level rules with human-readable messages, plus the email and
// verification-code checks used by the login flow.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// emailPattern is intentionally loose: local@domain.tld. Anything stricter
// belongs on the server.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var digitsOnly = regexp.MustCompile(`^[0-9]{6}$`)

// FieldError is a field-level validation failure. Non-fatal: it blocks
// submission only and is cleared as the user corrects input.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Rule describes constraints for a single field.
type Rule struct {
	Required  bool
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
	Custom    func(value string) string
}

// Validator accumulates field errors across several Validate calls.
type Validator struct {
	errors []FieldError
}

// Validate applies rules to value and records any failures under field.
// Previous errors for the same field are replaced.
func (v *Validator) Validate(value, field string, rules Rule) *Validator {
	v.ClearField(field)

	if rules.Required && strings.TrimSpace(value) == "" {
		v.add(field, fmt.Sprintf("%s is required", field))
		return v
	}

	// Remaining rules only apply to non-empty values.
	if strings.TrimSpace(value) == "" {
		return v
	}

	if rules.MinLength > 0 && len(value) < rules.MinLength {
		v.add(field, fmt.Sprintf("%s must be at least %d characters", field, rules.MinLength))
	}
	if rules.MaxLength > 0 && len(value) > rules.MaxLength {
		v.add(field, fmt.Sprintf("%s must not exceed %d characters", field, rules.MaxLength))
	}
	if rules.Pattern != nil && !rules.Pattern.MatchString(value) {
		v.add(field, fmt.Sprintf("%s format is invalid", field))
	}
	if rules.Custom != nil {
		if msg := rules.Custom(value); msg != "" {
			v.add(field, msg)
		}
	}

	return v
}

func (v *Validator) add(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// Error returns the message recorded for field, or "".
func (v *Validator) Error(field string) string {
	for _, e := range v.errors {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// Errors returns a copy of all recorded errors.
func (v *Validator) Errors() []FieldError {
	out := make([]FieldError, len(v.errors))
	copy(out, v.errors)
	return out
}

func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

func (v *Validator) Clear() {
	v.errors = nil
}

func (v *Validator) ClearField(field string) {
	kept := v.errors[:0]
	for _, e := range v.errors {
		if e.Field != field {
			kept = append(kept, e)
		}
	}
	v.errors = kept
}

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// NormalizeCode strips non-digit characters and truncates the result to six
// characters, mirroring what the login form does as the user types.
func NormalizeCode(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
		if b.Len() == 6 {
			break
		}
	}
	return b.String()
}

// ValidCode reports whether s is exactly six digits.
func ValidCode(s string) bool {
	return digitsOnly.MatchString(s)
}

// NameRule is the rule set for the price list name field: required,
// 1–255 characters, no leading or trailing whitespace.
func NameRule() Rule {
	return Rule{
		Required:  true,
		MinLength: 1,
		MaxLength: 255,
		Custom: func(value string) string {
			if strings.TrimSpace(value) != value {
				return "name cannot have leading or trailing spaces"
			}
			return ""
		},
	}
}

// ValidateName applies NameRule to a price list name and returns the errors.
func ValidateName(name string) []FieldError {
	v := &Validator{}
	v.Validate(name, "name", NameRule())
	return v.Errors()
}
