package patients

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var motechIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("motechid", func(fl validator.FieldLevel) bool {
		return motechIDPattern.MatchString(fl.Field().String())
	})

	return v
}

// ValidationError lists failed fields keyed by form field name.
// It unwraps to ErrInvalid.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

// Validate checks struct rules and date ordering relative to now.
func (c Command) Validate(now time.Time) error {
	fields := map[string]string{}

	if err := validate.Struct(c); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		for _, fe := range verrs {
			fields[fe.Field()] = message(fe)
		}
	}

	if _, failed := fields["date_of_birth"]; !failed {
		if dob, err := time.Parse(DateLayout, c.DateOfBirth); err == nil && dob.After(now) {
			fields["date_of_birth"] = "cannot be in the future"
		}
	}

	if _, failed := fields["death_date"]; !failed && c.Dead && c.DeathDate != "" {
		death, err := time.Parse(DateLayout, c.DeathDate)
		switch {
		case err != nil:
			fields["death_date"] = "must be a date (YYYY-MM-DD)"
		case death.After(now):
			fields["death_date"] = "cannot be in the future"
		default:
			if dob, err := time.Parse(DateLayout, c.DateOfBirth); err == nil && death.Before(dob) {
				fields["death_date"] = "cannot precede date of birth"
			}
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "must be a date (YYYY-MM-DD)"
	case "motechid":
		return "may contain only letters, digits, and dashes"
	default:
		return "is invalid"
	}
}
