package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"contact-manager/internal/domains/contact/model"
	"contact-manager/internal/infrastructure/database"
	storeconn "contact-manager/pkg/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

var schemaStatements = []string{`
CREATE TABLE IF NOT EXISTS contacts (
	id         UUID PRIMARY KEY,
	seq        BIGSERIAL NOT NULL,
	name       TEXT NOT NULL CHECK (btrim(name) <> ''),
	email      TEXT NOT NULL CHECK (email <> ''),
	phone      TEXT NOT NULL CHECK (btrim(phone) <> ''),
	message    TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_contacts_created_at ON contacts (created_at DESC, seq DESC)`,
}

const contactColumns = `id::text, name, email, phone, message, created_at, updated_at`

type postgresRepository struct {
	db  *database.PostgresDB
	now func() time.Time
}

// NewPostgresRepository stores contacts in the contacts table. db may be
// unconnected at construction; every call needs it connected.
func NewPostgresRepository(db *database.PostgresDB) Repository {
	return &postgresRepository{
		db:  db,
		now: time.Now,
	}
}

// =====================================================
// SCHEMA
// =====================================================

func (r *postgresRepository) EnsureSchema(ctx context.Context) error {
	pool, err := r.db.Acquire()
	if err != nil {
		return err
	}

	err = storeconn.WithTransaction(ctx, pool, func(tx pgx.Tx) error {
		for _, stmt := range schemaStatements {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create contacts schema: %w", err)
	}
	return nil
}

// =====================================================
// INSERT
// =====================================================

func (r *postgresRepository) Insert(ctx context.Context, c *model.Contact) (*model.Contact, error) {
	record, err := model.NewRecord(c, r.now())
	if err != nil {
		return nil, err
	}

	pool, err := r.db.Acquire()
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO contacts (id, name, email, phone, message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = pool.Exec(ctx, query,
		id,
		record.Name,
		record.Email,
		record.Phone,
		record.Message,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert contact: %w", err)
	}

	record.ID = id.String()
	return record, nil
}

// =====================================================
// LIST
// =====================================================

func (r *postgresRepository) ListAll(ctx context.Context) ([]*model.Contact, error) {
	pool, err := r.db.Acquire()
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY created_at DESC, seq DESC`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]*model.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	return contacts, nil
}

// =====================================================
// DELETE
// =====================================================

func (r *postgresRepository) DeleteByID(ctx context.Context, id string) (*model.Contact, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, model.ErrInvalidID
	}

	pool, err := r.db.Acquire()
	if err != nil {
		return nil, err
	}

	query := `DELETE FROM contacts WHERE id = $1 RETURNING ` + contactColumns

	c, err := scanContact(pool.QueryRow(ctx, query, parsed))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to delete contact: %w", err)
	}
	return c, nil
}

func scanContact(row pgx.Row) (*model.Contact, error) {
	c := &model.Contact{}
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Message,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}
