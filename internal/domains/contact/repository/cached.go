package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"contact-manager/internal/domains/contact/model"
	"contact-manager/pkg/cache"
)

const (
	// ListCacheKey prefixes the cached ListAll result; the full key ends in
	// the generation it was read at.
	ListCacheKey = "contacts:all"

	// GenerationKey is incremented after every successful write
	GenerationKey = "contacts:gen"
)

// ListKey is the cache key for the list read at generation gen
func ListKey(gen int64) string {
	return ListCacheKey + ":" + strconv.FormatInt(gen, 10)
}

// cachedRepository serves ListAll from the cache. Every successful write
// bumps the generation, so a list read before the write can only land under
// a key no later reader looks at. Cache errors never fail a call.
type cachedRepository struct {
	Repository
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedRepository(inner Repository, c cache.Cache, ttl time.Duration) Repository {
	return &cachedRepository{
		Repository: inner,
		cache:      c,
		ttl:        ttl,
	}
}

func (r *cachedRepository) ListAll(ctx context.Context) ([]*model.Contact, error) {
	// The generation must be read before the store
	gen, ok := r.generation(ctx)
	if !ok {
		return r.Repository.ListAll(ctx)
	}
	key := ListKey(gen)

	var cached []*model.Contact
	found, err := r.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("contact list cache read failed")
	}
	if found && cached != nil {
		return cached, nil
	}

	contacts, err := r.Repository.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, contacts, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("contact list cache write failed")
	}
	return contacts, nil
}

func (r *cachedRepository) Insert(ctx context.Context, c *model.Contact) (*model.Contact, error) {
	created, err := r.Repository.Insert(ctx, c)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return created, nil
}

func (r *cachedRepository) DeleteByID(ctx context.Context, id string) (*model.Contact, error) {
	deleted, err := r.Repository.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return deleted, nil
}

// generation returns the current list generation. ok is false when the cache
// cannot tell, in which case the list must not be cached.
func (r *cachedRepository) generation(ctx context.Context) (int64, bool) {
	var gen int64
	if _, err := r.cache.Get(ctx, GenerationKey, &gen); err != nil {
		log.Warn().Err(err).Str("key", GenerationKey).Msg("contact list generation read failed")
		return 0, false
	}
	return gen, true
}

func (r *cachedRepository) invalidate(ctx context.Context) {
	if _, err := r.cache.Incr(ctx, GenerationKey); err != nil {
		log.Warn().Err(err).Str("key", GenerationKey).Msg("contact list cache invalidation failed")
	}
}
