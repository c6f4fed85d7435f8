package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// ErrNotConnected is returned when the pool is used before Connect
var ErrNotConnected = errors.New("database pool is not initialized")

// Ping checks the database is reachable, bounded to 5s
func (db *PostgresDB) Ping(ctx context.Context) error {
	if db.Pool == nil {
		return ErrNotConnected
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Acquire returns the live pool or ErrNotConnected
func (db *PostgresDB) Acquire() (*pgxpool.Pool, error) {
	if db.Pool == nil {
		return nil, ErrNotConnected
	}
	return db.Pool, nil
}

// Close closes the pool. Safe to call more than once.
func (db *PostgresDB) Close() error {
	if db.Pool == nil {
		return nil
	}

	log.Info().Msg("[DATABASE] Closing database connection pool...")
	db.Pool.Close()
	db.Pool = nil
	log.Info().Msg("[DATABASE] Connection pool closed successfully")

	return nil
}
