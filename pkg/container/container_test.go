package container

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact-manager/internal/config"
	"contact-manager/internal/domains/contact/model"
	"contact-manager/internal/infrastructure/database"
	"contact-manager/internal/infrastructure/mongodb"
	"contact-manager/pkg/cache"
	storeconn "contact-manager/pkg/database"
)

func memoryConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Environment: "test",
			Port:        "5000",
			DeployMode:  config.DeployServer,
		},
		Store: config.StoreConfig{
			URI:    "memory://",
			Driver: config.DriverMemory,
		},
		Redis: config.RedisConfig{CacheTTL: 30 * time.Second},
	}
}

func TestNewContainer_Memory(t *testing.T) {
	ctx := context.Background()

	c, err := NewContainer(memoryConfig())
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)

	assert.Nil(t, c.Backend)
	assert.Nil(t, c.Redis)
	assert.IsType(t, cache.Noop{}, c.Cache)
	assert.Equal(t, storeconn.StateUnconnected, c.Store.State())

	require.NoError(t, c.Connect(ctx))
	assert.Equal(t, storeconn.StateConnected, c.Store.State())
	require.NoError(t, c.HealthCheck(ctx))

	created, err := c.ContactService.CreateContact(ctx, &model.CreateContactRequest{
		Name:  "Ann",
		Email: "ann@example.com",
		Phone: "555",
	})
	require.NoError(t, err)

	list, err := c.ContactService.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestNewContainer_SelectsBackend(t *testing.T) {
	pg := memoryConfig()
	pg.Store = config.StoreConfig{URI: "postgres://localhost/contacts", Driver: config.DriverPostgres}

	c, err := NewContainer(pg)
	require.NoError(t, err)
	assert.IsType(t, &database.PostgresDB{}, c.Backend)
	assert.Equal(t, "postgres", c.Store.Name())

	mg := memoryConfig()
	mg.Store = config.StoreConfig{URI: "mongodb://localhost:27017", Driver: config.DriverMongo, MongoDatabase: "contacts"}

	c, err = NewContainer(mg)
	require.NoError(t, err)
	assert.IsType(t, &mongodb.Client{}, c.Backend)
}

func TestNewContainer_RedisEnablesCache(t *testing.T) {
	cfg := memoryConfig()
	cfg.Redis.Host = "localhost:6379"

	c, err := NewContainer(cfg)
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)

	require.NotNil(t, c.Redis)
	assert.Same(t, c.Redis, c.Cache)
}

func TestNewContainer_Errors(t *testing.T) {
	_, err := NewContainer(nil)
	assert.Error(t, err)

	cfg := memoryConfig()
	cfg.Store.Driver = "sqlite"
	_, err = NewContainer(cfg)
	assert.Error(t, err)
}

func TestCleanup_ResetsConnector(t *testing.T) {
	c, err := NewContainer(memoryConfig())
	require.NoError(t, err)

	require.NoError(t, c.Connect(context.Background()))
	c.Cleanup()
	assert.Equal(t, storeconn.StateUnconnected, c.Store.State())
}
