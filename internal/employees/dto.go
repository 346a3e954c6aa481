package employees

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FieldSet is an explicit field update set: only the five mutable employee
// fields are accepted, anything else is rejected at decode time. A nil
// pointer means the field was absent from the payload.
type FieldSet struct {
	FirstName *string
	LastName  *string
	Email     *string
	Position  *string
	Salary    *float64

	// salaryInvalid records a supplied salary that could not be read as a
	// number, so the validator can report it instead of a decode failure.
	salaryInvalid bool
}

// UnmarshalJSON decodes a payload into the field set, rejecting unknown keys.
func (f *FieldSet) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key, value := range raw {
		switch key {
		case "first_name":
			if err := decodeString(key, value, &f.FirstName); err != nil {
				return err
			}
		case "last_name":
			if err := decodeString(key, value, &f.LastName); err != nil {
				return err
			}
		case "email":
			if err := decodeString(key, value, &f.Email); err != nil {
				return err
			}
		case "position":
			if err := decodeString(key, value, &f.Position); err != nil {
				return err
			}
		case "salary":
			f.decodeSalary(value)
		default:
			return fmt.Errorf("unknown field %q", key)
		}
	}
	return nil
}

func decodeString(key string, value json.RawMessage, dst **string) error {
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return fmt.Errorf("field %q must be a string", key)
	}
	*dst = &s
	return nil
}

// decodeSalary accepts a JSON number or a numeric string; anything else is
// kept as an invalid marker for the validator to report.
func (f *FieldSet) decodeSalary(value json.RawMessage) {
	var n float64
	if err := json.Unmarshal(value, &n); err == nil {
		f.Salary = &n
		return
	}
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		if parsed, perr := strconv.ParseFloat(strings.TrimSpace(s), 64); perr == nil {
			f.Salary = &parsed
			return
		}
	}
	f.salaryInvalid = true
}

// Empty reports whether the payload supplied no fields at all.
func (f FieldSet) Empty() bool {
	return f.FirstName == nil && f.LastName == nil && f.Email == nil &&
		f.Position == nil && f.Salary == nil && !f.salaryInvalid
}

// Normalize trims leading and trailing whitespace from every supplied text
// field, before validation and before storage.
func (f *FieldSet) Normalize() {
	for _, p := range []**string{&f.FirstName, &f.LastName, &f.Email, &f.Position} {
		if *p != nil {
			trimmed := strings.TrimSpace(**p)
			*p = &trimmed
		}
	}
}
