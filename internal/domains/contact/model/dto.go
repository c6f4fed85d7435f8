package model

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateContactRequest is the body of POST /contacts
type CreateContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// MissingFields lists required fields that were not supplied at all.
// Whitespace-only values are left to the store's validation.
func (r CreateContactRequest) MissingFields() []string {
	var missing []string
	if r.Name == "" {
		missing = append(missing, FieldName)
	}
	if r.Email == "" {
		missing = append(missing, FieldEmail)
	}
	if r.Phone == "" {
		missing = append(missing, FieldPhone)
	}
	return missing
}

// ToContact builds the unsaved contact for this request
func (r CreateContactRequest) ToContact() *Contact {
	return &Contact{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Message: r.Message,
	}
}

// =====================================================
// DELETE OUTCOME
// =====================================================

// DeleteResult is the outcome of a delete that reached the store
type DeleteResult int

const (
	DeleteResultFailed DeleteResult = iota
	DeleteResultDeleted
	DeleteResultNotFound
	DeleteResultInvalidID
)

func (r DeleteResult) String() string {
	switch r {
	case DeleteResultDeleted:
		return "deleted"
	case DeleteResultNotFound:
		return "not_found"
	case DeleteResultInvalidID:
		return "invalid_id"
	default:
		return "failed"
	}
}
