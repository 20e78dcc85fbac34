// Package postgres opens and health-checks the primary consultant store.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // postgres driver
)

// Config holds connection pool settings.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Client wraps the pooled *sql.DB.
type Client struct {
	db *sql.DB
}

// Open creates a pooled client. No connection is made until first use.
func Open(cfg Config) (*Client, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn is required")
	}

	sqlDB, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxLifetime)

	return &Client{db: sqlDB}, nil
}

// NewClientForTest wraps an existing handle, typically one from sqlmock (test-only).
func NewClientForTest(sqlDB *sql.DB) *Client {
	return &Client{db: sqlDB}
}

// DB exposes the pool to repositories.
func (c *Client) DB() *sql.DB {
	return c.db
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close releases the pool.
func (c *Client) Close() {
	_ = c.db.Close()
}

// WaitForReady polls Ping until the database responds or timeout expires.
func (c *Client) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if err := c.Ping(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for postgres: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}
