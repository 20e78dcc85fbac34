package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/findbrexitconsultants/directory/internal/db"
	"github.com/findbrexitconsultants/directory/internal/domain"
	domcons "github.com/findbrexitconsultants/directory/internal/domain/consultant"
	"github.com/findbrexitconsultants/directory/internal/domain/search/spec"
)

// Key holds the JSON snapshot of the approved list.
var Key = domain.KeyPrefix + "snapshot:approved"

// store is the consumer interface for the snapshot cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// lister is the record store's full approved scan.
type lister interface {
	ListApproved(ctx context.Context) ([]domcons.Consultant, error)
}

// Cache is the fetch-all source of the fallback resolver: the approved list,
// served from Valkey while fresh and reloaded from the record store otherwise.
// Cache failures degrade to a direct load; they never fail the read.
type Cache struct {
	inner      lister
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator. A ttl of zero or less disables caching.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner lister,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Cache {
	return &Cache{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Candidates returns the whole approved list whatever the filters.
func (c *Cache) Candidates(ctx context.Context, _ spec.Spec) ([]domcons.Consultant, error) {
	return c.ListApproved(ctx)
}

// ListApproved returns the cached approved list or loads and caches it.
func (c *Cache) ListApproved(ctx context.Context) ([]domcons.Consultant, error) {
	if c.ttl <= 0 {
		return c.load(ctx)
	}

	if cs, ok := c.getFromCache(ctx); ok {
		c.incCache("hit")
		return cs, nil
	}
	c.incCache("miss")

	cs, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	c.putToCache(ctx, cs)
	return cs, nil
}

// Invalidate drops the snapshot so the next read reloads from the record store.
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.store.Del(ctx, Key); err != nil {
		return fmt.Errorf("invalidate snapshot: %w", err)
	}
	return nil
}

func (c *Cache) load(ctx context.Context) ([]domcons.Consultant, error) {
	cs, err := c.inner.ListApproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("list approved: %w", err)
	}
	return cs, nil
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *Cache) getFromCache(ctx context.Context) ([]domcons.Consultant, bool) {
	data, err := c.store.Get(ctx, Key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get approved snapshot", zap.Error(err))
		}
		return nil, false
	}

	var rs []record
	if err := json.Unmarshal(data, &rs); err != nil {
		c.logger.Warn("Failed to parse approved snapshot", zap.Error(err))
		return nil, false
	}
	return fromRecords(rs), true
}

func (c *Cache) putToCache(ctx context.Context, cs []domcons.Consultant) {
	data, err := json.Marshal(toRecords(cs))
	if err != nil {
		c.logger.Warn("Failed to encode approved snapshot", zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, Key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache approved snapshot", zap.Error(err))
	}
}
