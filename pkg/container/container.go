package container

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"contact-manager/internal/config"
	contactHandler "contact-manager/internal/domains/contact/handler"
	contactRepo "contact-manager/internal/domains/contact/repository"
	contactService "contact-manager/internal/domains/contact/service"
	infraCache "contact-manager/internal/infrastructure/cache"
	"contact-manager/internal/infrastructure/database"
	"contact-manager/internal/infrastructure/mongodb"
	"contact-manager/pkg/cache"
	storeconn "contact-manager/pkg/database"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the application.
// Build order: config → infrastructure → repository → service → handler.
// Nothing touches the network until Connect.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================

	Config  *config.Config
	Backend storeconn.Backend      // nil for the in-memory store
	Store   *storeconn.Connector   // guards the backend connection
	Redis   *infraCache.RedisCache // nil when REDIS_HOST is empty
	Cache   cache.Cache

	// ========================================
	// REPOSITORY LAYER
	// ========================================

	ContactRepo contactRepo.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================

	ContactService contactService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================

	ContactHandler *contactHandler.ContactHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer wires the dependency graph for cfg
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("container: nil config")
	}

	log.Info().
		Str("environment", cfg.App.Environment).
		Str("store", string(cfg.Store.Driver)).
		Str("deploy_mode", string(cfg.App.DeployMode)).
		Msg("Initializing DI container")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: STORE BACKEND
	// ========================================
	var store contactRepo.Repository

	switch cfg.Store.Driver {
	case config.DriverPostgres:
		dbConfig, err := config.LoadDatabaseConfig(cfg.Store.URI)
		if err != nil {
			return nil, fmt.Errorf("failed to load database config: %w", err)
		}
		db := database.NewPostgresDB(dbConfig)
		c.Backend = db
		store = contactRepo.NewPostgresRepository(db)

	case config.DriverMongo:
		mongoConfig, err := config.LoadMongoConfig(cfg.Store)
		if err != nil {
			return nil, fmt.Errorf("failed to load mongodb config: %w", err)
		}
		client := mongodb.NewClient(mongoConfig)
		c.Backend = client
		store = contactRepo.NewMongoRepository(client)

	case config.DriverMemory:
		store = contactRepo.NewMemoryRepository()

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}

	// ========================================
	// STEP 2: CACHE
	// ========================================
	c.Cache = cache.Noop{}
	if cfg.Redis.Enabled() {
		c.Redis = infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		c.Cache = c.Redis
	}

	// ========================================
	// STEP 3: REPOSITORY
	// ========================================
	c.ContactRepo = store
	if cfg.Redis.Enabled() {
		c.ContactRepo = contactRepo.NewCachedRepository(store, c.Cache, cfg.Redis.CacheTTL)
	}

	// ========================================
	// STEP 4: SERVICE + HANDLER
	// ========================================
	c.ContactService = contactService.NewContactService(c.ContactRepo)
	c.ContactHandler = contactHandler.NewContactHandler(c.ContactService)

	c.Store = storeconn.NewConnector(string(cfg.Store.Driver), c.connect)

	log.Info().Msg("DI container initialized")
	return c, nil
}

// Connect establishes the store connection once; safe to call per request
func (c *Container) Connect(ctx context.Context) error {
	return c.Store.EnsureConnected(ctx)
}

// connect runs under the connector lock
func (c *Container) connect(ctx context.Context) error {
	if c.Backend != nil {
		if err := c.Backend.Connect(ctx); err != nil {
			return err
		}
	}

	if err := c.ContactRepo.EnsureSchema(ctx); err != nil {
		if c.Backend != nil {
			_ = c.Backend.Close()
		}
		return fmt.Errorf("failed to prepare schema: %w", err)
	}

	if c.Redis != nil {
		// Redis failure is not critical: the cache layer logs and falls through
		if err := c.Redis.Connect(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis connection failed (non-critical)")
		}
	}

	return nil
}

// HealthCheck pings the connected backend and, when configured, Redis.
// A Redis failure is logged only.
func (c *Container) HealthCheck(ctx context.Context) error {
	if checker, ok := c.Backend.(interface {
		HealthCheck(ctx context.Context) error
	}); ok {
		if err := checker.HealthCheck(ctx); err != nil {
			return fmt.Errorf("store health check failed: %w", err)
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis health check failed (non-critical)")
		}
	}
	return nil
}

// Cleanup releases connections on shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources...")

	if c.Backend != nil {
		if err := c.Backend.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close store")
		}
	}
	c.Store.Reset()

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}

	log.Info().Msg("Container cleanup completed")
}
