// Package inputval holds the field checks the console runs before it sends
// anything to the school API.
package inputval

import (
	"regexp"
	"strings"
)

var (
	emailRe   = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.[A-Za-z]{2,}$`)
	contactRe = regexp.MustCompile(`^\d{10,11}$`)
	pinCodeRe = regexp.MustCompile(`^\d{6}$`)
)

// IsValidEmail reports whether s looks like name@domain.tld.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// IsContactNumber reports whether s is 10 or 11 digits and nothing else.
func IsContactNumber(s string) bool {
	return contactRe.MatchString(strings.TrimSpace(s))
}

// IsPinCode reports whether s is a 6-digit postal code.
func IsPinCode(s string) bool {
	return pinCodeRe.MatchString(strings.TrimSpace(s))
}

// Field is one named form value for Missing.
type Field struct {
	Label string
	Value string
}

// Missing returns the labels of fields whose value is blank, in order.
func Missing(fields ...Field) []string {
	var out []string
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			out = append(out, f.Label)
		}
	}
	return out
}

// MissingMessage formats labels as "X, Y and Z are required." or "" when
// labels is empty.
func MissingMessage(labels []string) string {
	switch len(labels) {
	case 0:
		return ""
	case 1:
		return labels[0] + " is required."
	}
	return strings.Join(labels[:len(labels)-1], ", ") + " and " + labels[len(labels)-1] + " are required."
}
