package database

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// State is the lifecycle position of a Connector
type State int32

const (
	StateUnconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateUnconnected:
		return "unconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Backend is a store that must be connected before use
type Backend interface {
	Connect(ctx context.Context) error
	Close() error
}

// ConnectFunc establishes a connection. Only one runs at a time.
type ConnectFunc func(ctx context.Context) error

// Connector owns the "connect if not already connected" step for a backend.
//
//	Unconnected ──EnsureConnected──▶ Connecting ──ok──▶ Connected
//	     ▲                               │
//	     └───────────── error ───────────┘
//
// Concurrent callers share one attempt and its result. Each caller stops
// waiting when its own context ends; the attempt itself runs under the
// context of the caller that started it.
type Connector struct {
	name    string
	connect ConnectFunc

	flight singleflight.Group
	mu     sync.Mutex // serializes an attempt with Reset
	state  atomic.Int32
}

func NewConnector(name string, connect ConnectFunc) *Connector {
	return &Connector{
		name:    name,
		connect: connect,
	}
}

// Name of the backend this connector guards
func (c *Connector) Name() string {
	return c.name
}

// State returns the current state without blocking
func (c *Connector) State() State {
	return State(c.state.Load())
}

// EnsureConnected connects once. After success every call is a lock-free
// no-op; after a failure the next call tries again. It returns ctx.Err()
// (wrapped) if ctx ends before the shared attempt finishes.
func (c *Connector) EnsureConnected(ctx context.Context) error {
	if c.State() == StateConnected {
		return nil
	}

	result := c.flight.DoChan(c.name, func() (interface{}, error) {
		return nil, c.attempt(ctx)
	})

	select {
	case res := <-result:
		return res.Err
	case <-ctx.Done():
		return fmt.Errorf("connect %s: %w", c.name, ctx.Err())
	}
}

func (c *Connector) attempt(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.State() == StateConnected {
		return nil
	}

	c.state.Store(int32(StateConnecting))
	log.Info().Str("store", c.name).Msg("[STORE] Connecting...")

	if err := c.connect(ctx); err != nil {
		c.state.Store(int32(StateUnconnected))
		return fmt.Errorf("connect %s: %w", c.name, err)
	}

	c.state.Store(int32(StateConnected))
	log.Info().Str("store", c.name).Msg("[STORE] Connected")
	return nil
}

// Reset moves the connector back to Unconnected, typically after Close.
// It waits for an attempt in progress.
func (c *Connector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Store(int32(StateUnconnected))
}
