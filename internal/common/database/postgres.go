// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"accelerator-workers/internal/common/config"
	commonerrors "accelerator-workers/internal/common/errors"

	_ "github.com/lib/pq"
)

// PostgresClient owns the pool shared by every repository.
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres opens a pooled connection. It does not dial; call Ping.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return commonerrors.NewDatabaseConnectionFailedError(err)
	}
	return nil
}

// Transactor returns a unit of work over this pool.
func (c *PostgresClient) Transactor() *SQLTransactor {
	return NewTransactor(c.DB)
}

func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
