package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"contact-manager/internal/domains/contact/model"
	"contact-manager/internal/infrastructure/mongodb"
)

// =====================================================
// MONGODB REPOSITORY IMPLEMENTATION
// =====================================================

const contactsCollection = "contacts"

// contactDocument maps to the contacts collection
type contactDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email"`
	Phone     string        `bson:"phone"`
	Message   string        `bson:"message,omitempty"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

func toDocument(c *model.Contact) contactDocument {
	return contactDocument{
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (d contactDocument) toModel() *model.Contact {
	return &model.Contact{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Message:   d.Message,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// parseObjectID maps a malformed hex id to model.ErrInvalidID
func parseObjectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, model.ErrInvalidID
	}
	return oid, nil
}

type mongoRepository struct {
	client *mongodb.Client
	now    func() time.Time
}

// NewMongoRepository stores contacts as documents with ObjectID ids
func NewMongoRepository(client *mongodb.Client) Repository {
	return &mongoRepository{
		client: client,
		now:    time.Now,
	}
}

func (r *mongoRepository) collection() (*mongo.Collection, error) {
	return r.client.Collection(contactsCollection)
}

func (r *mongoRepository) EnsureSchema(ctx context.Context) error {
	coll, err := r.collection()
	if err != nil {
		return err
	}

	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create contacts index: %w", err)
	}
	return nil
}

func (r *mongoRepository) Insert(ctx context.Context, c *model.Contact) (*model.Contact, error) {
	record, err := model.NewRecord(c, r.now())
	if err != nil {
		return nil, err
	}

	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	doc := toDocument(record)
	doc.ID = bson.NewObjectID()

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert contact: %w", err)
	}

	record.ID = doc.ID.Hex()
	return record, nil
}

func (r *mongoRepository) ListAll(ctx context.Context) ([]*model.Contact, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	})

	cursor, err := coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []contactDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode contacts: %w", err)
	}

	contacts := make([]*model.Contact, 0, len(docs))
	for _, d := range docs {
		contacts = append(contacts, d.toModel())
	}
	return contacts, nil
}

func (r *mongoRepository) DeleteByID(ctx context.Context, id string) (*model.Contact, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	var doc contactDocument
	err = coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to delete contact: %w", err)
	}
	return doc.toModel(), nil
}
