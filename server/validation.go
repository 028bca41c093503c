package server

import (
	"fmt"
	"net/http"
	"net/mail"
)

// FieldError reports one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NonEmpty requires the field to carry a value.
func NonEmpty(field, value string) *FieldError {
	if value == "" {
		return &FieldError{Field: field, Message: "must not be empty"}
	}
	return nil
}

// EmailShape requires the field to parse as an email address. An empty value
// passes so it can be combined with NonEmpty for required fields.
func EmailShape(field, value string) *FieldError {
	if value == "" {
		return nil
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return &FieldError{Field: field, Message: "must be a valid email address"}
	}
	return nil
}

// CollectFieldErrors gathers the failures from a list of validator results.
func CollectFieldErrors(checks ...*FieldError) []FieldError {
	var errs []FieldError
	for _, check := range checks {
		if check != nil {
			errs = append(errs, *check)
		}
	}
	return errs
}

// writeValidationErrors responds 400 with the full list of failed fields.
func writeValidationErrors(w http.ResponseWriter, errs []FieldError) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":  "validation_failed",
		"fields": errs,
	})
}
