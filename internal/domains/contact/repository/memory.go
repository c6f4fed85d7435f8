package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"contact-manager/internal/domains/contact/model"
)

type memoryRecord struct {
	seq     int64
	contact model.Contact
}

type memoryRepository struct {
	mu      sync.RWMutex
	seq     int64
	records []memoryRecord
	now     func() time.Time
}

// MemoryOption configures the in-memory store
type MemoryOption func(*memoryRepository)

// WithClock replaces time.Now
func WithClock(now func() time.Time) MemoryOption {
	return func(r *memoryRepository) {
		r.now = now
	}
}

// NewMemoryRepository returns a process-local store with UUID ids
func NewMemoryRepository(opts ...MemoryOption) Repository {
	r := &memoryRepository{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *memoryRepository) Insert(_ context.Context, c *model.Contact) (*model.Contact, error) {
	record, err := model.NewRecord(c, r.now())
	if err != nil {
		return nil, err
	}
	record.ID = uuid.NewString()

	r.mu.Lock()
	r.seq++
	r.records = append(r.records, memoryRecord{seq: r.seq, contact: *record})
	r.mu.Unlock()

	out := *record
	return &out, nil
}

func (r *memoryRepository) ListAll(_ context.Context) ([]*model.Contact, error) {
	r.mu.RLock()
	snapshot := slices.Clone(r.records)
	r.mu.RUnlock()

	slices.SortFunc(snapshot, func(a, b memoryRecord) int {
		if c := b.contact.CreatedAt.Compare(a.contact.CreatedAt); c != 0 {
			return c
		}
		return int(b.seq - a.seq)
	})

	out := make([]*model.Contact, 0, len(snapshot))
	for i := range snapshot {
		c := snapshot[i].contact
		out = append(out, &c)
	}
	return out, nil
}

func (r *memoryRepository) DeleteByID(_ context.Context, id string) (*model.Contact, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, model.ErrInvalidID
	}
	key := parsed.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, rec := range r.records {
		if rec.contact.ID == key {
			r.records = slices.Delete(r.records, i, i+1)
			out := rec.contact
			return &out, nil
		}
	}
	return nil, model.ErrContactNotFound
}

func (r *memoryRepository) EnsureSchema(context.Context) error {
	return nil
}
