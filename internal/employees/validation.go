package employees

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// fieldLabels are the human-readable names used in validation messages.
var fieldLabels = map[string]string{
	"first_name": "First Name",
	"last_name":  "Last Name",
	"email":      "Email",
	"position":   "Position",
	"salary":     "Salary",
}

// Validate checks every supplied field in one pass and returns a map of
// field name to message, or nil when everything passes. With partial set,
// absent fields are skipped; otherwise all five fields are required.
// Uniqueness is not checked here, it needs storage access.
func Validate(f FieldSet, partial bool) map[string]string {
	errs := make(map[string]string)

	checkText(errs, "first_name", f.FirstName, partial)
	checkText(errs, "last_name", f.LastName, partial)
	checkText(errs, "email", f.Email, partial)
	checkText(errs, "position", f.Position, partial)

	if f.Email != nil && strings.TrimSpace(*f.Email) != "" {
		if err := validate.Var(*f.Email, "email"); err != nil {
			errs["email"] = "Email format is invalid"
		}
	}

	switch {
	case f.salaryInvalid:
		errs["salary"] = "Salary must be a valid number"
	case f.Salary == nil:
		if !partial {
			errs["salary"] = fieldLabels["salary"] + " is required"
		}
	case *f.Salary <= 0:
		errs["salary"] = "Salary must be greater than 0"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func checkText(errs map[string]string, name string, value *string, partial bool) {
	if value == nil {
		if !partial {
			errs[name] = fieldLabels[name] + " is required"
		}
		return
	}
	if strings.TrimSpace(*value) == "" {
		errs[name] = fieldLabels[name] + " is required"
	}
}
