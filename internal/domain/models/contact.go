// internal/domain/models/contact.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ContactNumber is a phone number kept as text so leading zeros survive.
// Some API records carry contact numbers as JSON numbers; both forms decode
// to the same string, and it always encodes as a JSON string.
type ContactNumber string

// UnmarshalJSON accepts a JSON string, a JSON number, or null.
func (c *ContactNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*c = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = ContactNumber(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("models: contact number must be string or number: %w", err)
	}
	*c = ContactNumber(n.String())
	return nil
}

// String returns the number as text.
func (c ContactNumber) String() string { return string(c) }
