package services

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tapright/waitlist-api/pkg/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// One message per field, whichever rule failed first
var fieldMessages = map[string]string{
	"fullName":   "Full name is required.",
	"email":      "Enter a valid email address.",
	"spendFocus": "Let us know your optimisation focus.",
	"notes":      "Notes must be 1000 characters or fewer.",
	"optIn":      "Please confirm you want to receive updates.",
}

// ValidationError maps each rejected field to a human-readable message
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	return "validation failed: " + strings.Join(names, ", ")
}

type signupForm struct {
	FullName   string `json:"fullName" validate:"min=2"`
	Email      string `json:"email" validate:"waitlist_email"`
	SpendFocus string `json:"spendFocus" validate:"required"`
	Notes      string `json:"notes" validate:"max=1000"`
	OptIn      bool   `json:"optIn" validate:"eq=true"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		return name
	})
	if err := v.RegisterValidation("waitlist_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("registering waitlist_email validation: %v", err))
	}
	return v
}

// ValidateSubmission normalizes a decoded request body and checks every field
// independently.
func ValidateSubmission(raw map[string]interface{}) (models.SignupSubmission, *ValidationError) {
	form := signupForm{
		FullName:   strings.TrimSpace(stringField(raw, "fullName")),
		Email:      strings.TrimSpace(stringField(raw, "email")),
		SpendFocus: stringField(raw, "spendFocus"),
		Notes:      stringField(raw, "notes"),
		OptIn:      optedIn(raw["optIn"]),
	}

	if err := validate.Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return models.SignupSubmission{}, &ValidationError{Fields: map[string]string{}}
		}
		out := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			if _, seen := out[fe.Field()]; !seen {
				out[fe.Field()] = fieldMessages[fe.Field()]
			}
		}
		return models.SignupSubmission{}, &ValidationError{Fields: out}
	}

	return models.SignupSubmission{
		FullName:   form.FullName,
		Email:      form.Email,
		SpendFocus: form.SpendFocus,
		Notes:      form.Notes,
		OptIn:      form.OptIn,
	}, nil
}

// non-string values are treated as empty
func stringField(raw map[string]interface{}, key string) string {
	s, _ := raw[key].(string)
	return s
}

// optedIn accepts boolean true or the string "true"
func optedIn(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true"
	}
	return false
}
