package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"contact-manager/internal/domains/contact/model"
	"contact-manager/internal/domains/contact/repository"
)

type contactService struct {
	repo repository.Repository
}

func NewContactService(repo repository.Repository) ServiceInterface {
	return &contactService{
		repo: repo,
	}
}

// CreateContact rejects absent required fields before reaching the store
func (s *contactService) CreateContact(ctx context.Context, req *model.CreateContactRequest) (*model.Contact, error) {
	if req == nil {
		req = &model.CreateContactRequest{}
	}

	if missing := req.MissingFields(); len(missing) > 0 {
		return nil, model.NewRequiredFieldsError(missing)
	}

	created, err := s.repo.Insert(ctx, req.ToContact())
	if err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			return nil, ve
		}
		return nil, fmt.Errorf("%w: insert: %w", model.ErrStoreFailure, err)
	}

	log.Info().Str("contact_id", created.ID).Msg("Contact created")
	return created, nil
}

func (s *contactService) ListContacts(ctx context.Context) ([]*model.Contact, error) {
	contacts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %w", model.ErrStoreFailure, err)
	}

	if contacts == nil {
		return []*model.Contact{}, nil
	}
	return contacts, nil
}

func (s *contactService) DeleteContact(ctx context.Context, id string) (model.DeleteResult, error) {
	_, err := s.repo.DeleteByID(ctx, id)
	switch {
	case err == nil:
		log.Info().Str("contact_id", id).Msg("Contact deleted")
		return model.DeleteResultDeleted, nil
	case errors.Is(err, model.ErrContactNotFound):
		return model.DeleteResultNotFound, nil
	case errors.Is(err, model.ErrInvalidID):
		return model.DeleteResultInvalidID, nil
	default:
		return model.DeleteResultFailed, fmt.Errorf("%w: delete %s: %w", model.ErrStoreFailure, id, err)
	}
}
