package model

import (
	"errors"
	"strings"
)

// Errors
var (
	ErrContactNotFound = errors.New("contact not found")
	ErrInvalidID       = errors.New("invalid contact id")
	ErrStoreFailure    = errors.New("contact store failure")
)

// FieldError is one failing field of a validation
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports input the store refuses to persist.
// Summary, when set, replaces the generated message.
type ValidationError struct {
	Summary string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	if e.Summary != "" {
		return e.Summary
	}

	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "Contact validation failed: " + strings.Join(parts, ", ")
}

// Has reports whether field failed validation
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// NewRequiredFieldsError is the fast-path rejection for absent required fields
func NewRequiredFieldsError(missing []string) *ValidationError {
	ve := &ValidationError{Summary: MsgRequiredFields}
	for _, field := range missing {
		ve.Fields = append(ve.Fields, FieldError{Field: field, Message: requiredMessage(field)})
	}
	return ve
}

func requiredMessage(field string) string {
	switch field {
	case FieldName:
		return MsgNameRequired
	case FieldEmail:
		return MsgEmailRequired
	case FieldPhone:
		return MsgPhoneRequired
	default:
		return field + " is required"
	}
}
