package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact-manager/internal/domains/contact/model"
)

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newClock() *fixedClock {
	return &fixedClock{now: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)}
}

func sample(name string) *model.Contact {
	return &model.Contact{
		Name:    name,
		Email:   "a@b.com",
		Phone:   "555",
		Message: "hello",
	}
}

func TestMemoryRepository_Insert(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	repo := NewMemoryRepository(WithClock(clock.Now))

	created, err := repo.Insert(ctx, &model.Contact{
		Name:  "  Ann  ",
		Email: "ann@example.com",
		Phone: " 555-0100 ",
	})
	require.NoError(t, err)

	_, parseErr := uuid.Parse(created.ID)
	assert.NoError(t, parseErr)
	assert.Equal(t, "Ann", created.Name)
	assert.Equal(t, "555-0100", created.Phone)
	assert.Equal(t, "", created.Message)
	assert.Equal(t, clock.Now(), created.CreatedAt)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	if diff := cmp.Diff(created, list[0]); diff != "" {
		t.Errorf("stored record mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryRepository_InsertRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.Insert(ctx, &model.Contact{Name: "A", Email: "not-an-email", Phone: "1"})

	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has(model.FieldEmail))

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryRepository_ListAllEmptyIsNotNil(t *testing.T) {
	list, err := NewMemoryRepository().ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Len(t, list, 0)
}

func TestMemoryRepository_ListAllNewestFirst(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	repo := NewMemoryRepository(WithClock(clock.Now))

	for _, name := range []string{"first", "second", "third"} {
		_, err := repo.Insert(ctx, sample(name))
		require.NoError(t, err)
		clock.Advance(time.Second)
	}

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Name)
	assert.Equal(t, "second", list[1].Name)
	assert.Equal(t, "first", list[2].Name)
}

func TestMemoryRepository_ListAllSameInstantLastInsertFirst(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	repo := NewMemoryRepository(WithClock(clock.Now))

	_, err := repo.Insert(ctx, sample("older"))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, sample("newer"))
	require.NoError(t, err)

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Name)
	assert.Equal(t, "older", list[1].Name)
}

func TestMemoryRepository_ListAllReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.Insert(ctx, sample("Ann"))
	require.NoError(t, err)

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	list[0].Name = "mutated"

	again, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ann", again[0].Name)
}

func TestMemoryRepository_DeleteByID(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	a, err := repo.Insert(ctx, sample("A"))
	require.NoError(t, err)
	b, err := repo.Insert(ctx, sample("B"))
	require.NoError(t, err)

	deleted, err := repo.DeleteByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, deleted.ID)

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	_, err = repo.DeleteByID(ctx, a.ID)
	assert.ErrorIs(t, err, model.ErrContactNotFound)
}

func TestMemoryRepository_DeleteByIDErrors(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	tests := []struct {
		name string
		id   string
		want error
	}{
		{name: "malformed", id: "not-a-valid-id", want: model.ErrInvalidID},
		{name: "empty", id: "", want: model.ErrInvalidID},
		{name: "well formed but absent", id: uuid.NewString(), want: model.ErrContactNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.DeleteByID(ctx, tt.id)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMemoryRepository_ConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Insert(ctx, sample("Ann"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 50)

	ids := make(map[string]struct{}, len(list))
	for _, c := range list {
		ids[c.ID] = struct{}{}
	}
	assert.Len(t, ids, 50)
}
