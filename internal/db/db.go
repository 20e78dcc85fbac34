package db

import (
	"context"
	"time"
)

// Store is the cache facade used by the snapshot cache and the view counters.
type Store interface {
	Pinger
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	IncrBy(ctx context.Context, key string, val int64) error
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
	// GetDel atomically reads and removes a key.
	GetDel(ctx context.Context, key string) ([]byte, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}
