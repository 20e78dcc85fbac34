package directory

import (
	"context"
	"sync"
	"time"

	domcons "github.com/findbrexitconsultants/directory/internal/domain/consultant"
	"github.com/findbrexitconsultants/directory/internal/domain/search/page"
	"github.com/findbrexitconsultants/directory/internal/domain/search/spec"
)

// remoteServer resolves a search with the service's server resolver.
type remoteServer struct {
	client *Client
}

func (r *remoteServer) Resolve(ctx context.Context, s spec.Spec) (page.Page, error) {
	var env searchEnvelope
	if err := r.client.get(ctx, "/api/v1/consultants/search", s.Values(), &env); err != nil {
		return page.Page{}, err
	}
	return page.Page{
		Consultants: toDomainAll(env.Consultants),
		Pagination: page.Pagination{
			Page:       env.Pagination.Page,
			Limit:      env.Pagination.Limit,
			Total:      env.Pagination.Total,
			TotalPages: env.Pagination.TotalPages,
		},
	}, nil
}

// remoteApproved is the fetch-all source of the local fallback. With a ttl it
// keeps the last good list in memory and serves it while fresh.
type remoteApproved struct {
	client *Client
	ttl    time.Duration

	mu      sync.Mutex
	cached  []domcons.Consultant
	fetched time.Time
}

func (r *remoteApproved) Candidates(ctx context.Context, _ spec.Spec) ([]domcons.Consultant, error) {
	if cs, ok := r.fresh(); ok {
		return cs, nil
	}

	list, err := r.client.Approved(ctx)
	if err != nil {
		return nil, err
	}
	cs := toDomainAll(list)

	if r.ttl > 0 {
		r.mu.Lock()
		r.cached, r.fetched = cs, time.Now()
		r.mu.Unlock()
	}
	return cloneConsultants(cs), nil
}

func (r *remoteApproved) fresh() ([]domcons.Consultant, bool) {
	if r.ttl <= 0 {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cached == nil || time.Since(r.fetched) > r.ttl {
		return nil, false
	}
	return cloneConsultants(r.cached), true
}

// cloneConsultants copies the slice; the pipeline sorts candidates in place.
func cloneConsultants(cs []domcons.Consultant) []domcons.Consultant {
	out := make([]domcons.Consultant, len(cs))
	copy(out, cs)
	return out
}
