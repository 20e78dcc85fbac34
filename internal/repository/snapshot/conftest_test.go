package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/findbrexitconsultants/directory/internal/db"
	domcons "github.com/findbrexitconsultants/directory/internal/domain/consultant"
)

type mockLister struct {
	result []domcons.Consultant
	err    error
	calls  int
}

func (m *mockLister) ListApproved(context.Context) ([]domcons.Consultant, error) {
	m.calls++
	return m.result, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	delFn func(ctx context.Context, key string) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockKVStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func newTestCache(t *testing.T, inner *mockLister, ttl time.Duration) (*Cache, *mockKVStore, *prometheus.CounterVec) {
	t.Helper()
	ms := &mockKVStore{}
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "test_snapshot_cache_total",
	}, []string{"result"})
	return New(inner, ms, ttl, counter, zap.NewNop()), ms, counter
}

func approvedList() []domcons.Consultant {
	at := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	h := 6
	return []domcons.Consultant{
		{
			ID: "a", CompanyName: "Border Ready", City: "Birmingham", PricingLevel: 2,
			ResponseTimeHours: &h, Verified: true, ApprovedAt: &at, ProfileViews: 9,
			CreatedAt: at.Add(-time.Hour), Rating: domcons.Rating{Average: 4.2, Count: 5},
		},
		{ID: "b", CompanyName: "Customs Desk", City: "London", ApprovedAt: &at, CreatedAt: at},
	}
}
