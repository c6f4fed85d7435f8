package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// ErrNotConnected is returned when a collection is requested before Connect
var ErrNotConnected = errors.New("mongodb client is not initialized")

// Config for the document store
type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// Client wraps mongo.Client and its lifecycle.
// Client is nil until Connect succeeds.
type Client struct {
	Config *Config
	Client *mongo.Client
}

func NewClient(config *Config) *Client {
	return &Client{Config: config}
}

// Connect opens the client and pings the primary
func (c *Client) Connect(ctx context.Context) error {
	log.Info().Str("database", c.Config.Database).Msg("[MONGODB] Connecting...")

	opts := options.Client().ApplyURI(c.Config.URI)
	if c.Config.ConnectTimeout > 0 {
		opts.SetConnectTimeout(c.Config.ConnectTimeout)
		opts.SetServerSelectionTimeout(c.Config.ConnectTimeout)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return fmt.Errorf("mongodb connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("mongodb ping failed: %w", err)
	}

	c.Client = client
	log.Info().Msg("[MONGODB] Connected successfully")
	return nil
}

// Collection returns a handle on name in the configured database
func (c *Client) Collection(name string) (*mongo.Collection, error) {
	if c.Client == nil {
		return nil, ErrNotConnected
	}
	return c.Client.Database(c.Config.Database).Collection(name), nil
}

func (c *Client) HealthCheck(ctx context.Context) error {
	if c.Client == nil {
		return ErrNotConnected
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := c.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb ping failed: %w", err)
	}
	return nil
}

// Close disconnects, bounded to 10s. Safe to call more than once.
func (c *Client) Close() error {
	if c.Client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := c.Client.Disconnect(ctx)
	c.Client = nil
	if err != nil {
		return fmt.Errorf("mongodb disconnect: %w", err)
	}

	log.Info().Msg("[MONGODB] Connection closed")
	return nil
}
