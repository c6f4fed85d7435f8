package service

import (
	"context"

	"contact-manager/internal/domains/contact/model"
)

// ServiceInterface defines the business operations of the contact domain
type ServiceInterface interface {
	// CreateContact validates and persists a new contact.
	// Returns *model.ValidationError for bad input, model.ErrStoreFailure otherwise.
	CreateContact(ctx context.Context, req *model.CreateContactRequest) (*model.Contact, error)

	// ListContacts returns every contact, newest first
	ListContacts(ctx context.Context) ([]*model.Contact, error)

	// DeleteContact removes a contact by id.
	// err is non-nil only for store failures.
	DeleteContact(ctx context.Context, id string) (model.DeleteResult, error)
}
