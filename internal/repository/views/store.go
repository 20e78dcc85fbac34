package views

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/findbrexitconsultants/directory/internal/db"
	"github.com/findbrexitconsultants/directory/internal/domain"
)

var keyPrefix = domain.KeyPrefix + "views:"

// store is the consumer interface for view counters (ISP).
type store interface {
	IncrBy(ctx context.Context, key string, val int64) error
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
	GetDel(ctx context.Context, key string) ([]byte, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Store keeps pending profile views per consultant in Valkey (INCRBY + EXPIRE NX).
type Store struct {
	store store
	ttl   time.Duration
}

// New creates a view counter store. ttl bounds how long an unflushed counter survives.
func New(s store, ttl time.Duration) *Store {
	return &Store{store: s, ttl: ttl}
}

// Add atomically adds n pending views for a consultant.
func (s *Store) Add(ctx context.Context, id string, n int64) error {
	key := keyPrefix + id
	if err := s.store.IncrBy(ctx, key, n); err != nil {
		return fmt.Errorf("views INCRBY %s: %w", key, err)
	}

	// TTL is set once, so repeated views do not keep an abandoned counter alive.
	if err := s.store.Expire(ctx, key, s.ttl, true); err != nil {
		return fmt.Errorf("views EXPIRE %s: %w", key, err)
	}
	return nil
}

// Drain takes every pending counter, removing it from the store.
// Counters read before an error are still returned.
func (s *Store) Drain(ctx context.Context) (map[string]int64, error) {
	keys, err := s.store.Scan(ctx, keyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("views SCAN: %w", err)
	}

	out := make(map[string]int64, len(keys))
	var errs []error
	for _, key := range keys {
		data, err := s.store.GetDel(ctx, key)
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue
			}
			errs = append(errs, fmt.Errorf("views GETDEL %s: %w", key, err))
			continue
		}
		n, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("views GETDEL %s parse: %w", key, err))
			continue
		}
		if n > 0 {
			out[strings.TrimPrefix(key, keyPrefix)] += n
		}
	}
	return out, errors.Join(errs...)
}
