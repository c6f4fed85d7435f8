package repository

import (
	"context"

	"contact-manager/internal/domains/contact/model"
)

// =====================================================
// CONTACT REPOSITORY INTERFACE
// =====================================================

// Repository is the contact store. Every backend enforces the same schema
// rules on Insert, so a record that comes back from the store is valid.
type Repository interface {
	// Insert validates c, assigns the id and timestamps and persists it.
	// Returns *model.ValidationError when c breaks the schema.
	Insert(ctx context.Context, c *model.Contact) (*model.Contact, error)

	// ListAll returns every contact, newest first. Never nil.
	ListAll(ctx context.Context) ([]*model.Contact, error)

	// DeleteByID removes and returns the contact.
	// Returns model.ErrContactNotFound or model.ErrInvalidID.
	DeleteByID(ctx context.Context, id string) (*model.Contact, error)

	// EnsureSchema prepares tables/indexes; idempotent
	EnsureSchema(ctx context.Context) error
}
