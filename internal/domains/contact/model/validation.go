package model

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// EmailPattern is the local@domain.tld rule every stored email matches
var EmailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// Field messages
const (
	MsgNameRequired   = "Name is required"
	MsgEmailRequired  = "Email is required"
	MsgEmailInvalid   = "Please provide a valid email"
	MsgPhoneRequired  = "Phone is required"
	MsgRequiredFields = "Name, email, and phone are required"
)

// Field names as they appear on the wire
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldMessage = "message"
)

var fieldOrder = []string{FieldName, FieldEmail, FieldPhone}

// Validate checks the schema rules on an already-normalized contact.
// It returns a *ValidationError listing every failing field, or nil.
func (c Contact) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Name,
			validation.Required.Error(MsgNameRequired),
		),
		validation.Field(&c.Email,
			validation.Required.Error(MsgEmailRequired),
			validation.Match(EmailPattern).Error(MsgEmailInvalid),
		),
		validation.Field(&c.Phone,
			validation.Required.Error(MsgPhoneRequired),
		),
	)
	return toValidationError(err)
}

// FieldErrors runs the same rules as Validate on draft input and returns the
// messages keyed by field. An empty map means the draft would be accepted.
func FieldErrors(name, email, phone string) map[string]string {
	draft := Contact{Name: name, Email: email, Phone: phone}
	draft.Normalize()

	out := make(map[string]string)

	var ve *ValidationError
	if errors.As(draft.Validate(), &ve) {
		for _, f := range ve.Fields {
			out[f.Field] = f.Message
		}
	}
	return out
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		// ValidateStruct misuse (internal error), not a user input problem
		return err
	}

	ve := &ValidationError{}
	for _, field := range fieldOrder {
		if fe, ok := errs[field]; ok && fe != nil {
			ve.Fields = append(ve.Fields, FieldError{Field: field, Message: fe.Error()})
		}
	}
	if len(ve.Fields) == 0 {
		return nil
	}
	return ve
}
