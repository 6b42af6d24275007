package validation

import (
	"fmt"
	"math"
	"net/mail"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/kbukum/tablekit/errors"
)

// Validator collects validation errors.
type Validator struct {
	errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{
		errors: make([]FieldError, 0),
	}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an AppError if there are validation errors, nil otherwise.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}

	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}

	appErr := errors.Validation(strings.Join(messages, "; "))
	appErr.Details = map[string]any{
		"fields": v.errors,
	}

	return appErr
}

// Err is Validate as a plain error, so a clean Validator yields a true nil.
func (v *Validator) Err() error {
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// Required checks if a string is non-empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// MaxLength checks if a string is within max length.
func (v *Validator) MaxLength(field, value string, maxLen int) *Validator {
	if maxLen > 0 && len(value) > maxLen {
		v.AddError(field, fmt.Sprintf("must be %d characters or less", maxLen))
	}
	return v
}

// Range checks that a number lies in [minVal, maxVal].
func (v *Validator) Range(field string, value, minVal, maxVal float64) *Validator {
	if math.IsNaN(value) || value < minVal || value > maxVal {
		v.AddError(field, fmt.Sprintf("must be between %g and %g", minVal, maxVal))
	}
	return v
}

// Bounds checks that minVal does not exceed maxVal.
func (v *Validator) Bounds(field string, minVal, maxVal float64) *Validator {
	if minVal > maxVal {
		v.AddError(field, fmt.Sprintf("min %g exceeds max %g", minVal, maxVal))
	}
	return v
}

// Step checks that a step is positive.
func (v *Validator) Step(field string, step float64) *Validator {
	if !(step > 0) {
		v.AddError(field, "step must be positive")
	}
	return v
}

// OneOf checks if a value is one of the allowed values.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if !slices.Contains(allowed, value) {
		v.AddError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	}
	return v
}

// SubsetOf checks that every value is one of the allowed values.
func (v *Validator) SubsetOf(field string, values, allowed []string) *Validator {
	for _, value := range values {
		if !slices.Contains(allowed, value) {
			v.AddError(field, fmt.Sprintf("%q is not one of: %s", value, strings.Join(allowed, ", ")))
		}
	}
	return v
}

// Email checks that a non-empty string is a single RFC 5322 address.
func (v *Validator) Email(field, value string) *Validator {
	if value == "" {
		return v
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v.AddError(field, "must be a valid email address")
	}
	return v
}

// URL checks that a non-empty string is an absolute http or https URL.
func (v *Validator) URL(field, value string) *Validator {
	if value == "" {
		return v
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		v.AddError(field, "must be an absolute http(s) URL")
	}
	return v
}

// Date checks that a non-empty string parses with layout.
func (v *Validator) Date(field, value, layout string) *Validator {
	if value == "" {
		return v
	}
	if _, err := time.Parse(layout, value); err != nil {
		v.AddError(field, fmt.Sprintf("must be a date in the form %s", layout))
	}
	return v
}

// Custom applies a custom validation condition.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}

// Required validates a single required field and returns an error if empty.
func Required(field, value string) error {
	return New().Required(field, value).Err()
}

// SplitAddresses splits a comma separated recipient list, dropping blanks.
func SplitAddresses(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
