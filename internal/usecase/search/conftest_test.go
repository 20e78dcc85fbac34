package search

import (
	"context"
	"fmt"
	"time"

	"github.com/findbrexitconsultants/directory/internal/domain/consultant"
	"github.com/findbrexitconsultants/directory/internal/domain/search/filter"
	"github.com/findbrexitconsultants/directory/internal/domain/search/page"
	"github.com/findbrexitconsultants/directory/internal/domain/search/spec"
	"github.com/findbrexitconsultants/directory/internal/domain/search/strategy"
)

// --- Mocks ---

type mockSource struct {
	fn    func(ctx context.Context, s spec.Spec) ([]consultant.Consultant, error)
	calls int
}

func (m *mockSource) Candidates(ctx context.Context, s spec.Spec) ([]consultant.Consultant, error) {
	m.calls++
	return m.fn(ctx, s)
}

// fullScan returns every record, pending ones included.
func fullScan(cs []consultant.Consultant) *mockSource {
	return &mockSource{fn: func(context.Context, spec.Spec) ([]consultant.Consultant, error) {
		out := make([]consultant.Consultant, len(cs))
		copy(out, cs)
		return out, nil
	}}
}

// pushdown mimics a store that evaluates the relational predicates itself.
func pushdown(cs []consultant.Consultant) *mockSource {
	return &mockSource{fn: func(_ context.Context, s spec.Spec) ([]consultant.Consultant, error) {
		return filter.Apply(cs, s), nil
	}}
}

func failing(err error) *mockSource {
	return &mockSource{fn: func(context.Context, spec.Spec) ([]consultant.Consultant, error) {
		return nil, err
	}}
}

type mockTaxonomy struct {
	services      map[string][]string
	industries    map[string][]string
	servicesErr   error
	industriesErr error
}

func (m *mockTaxonomy) ConsultantIDsByServices(_ context.Context, slugs []string) ([]string, error) {
	if m.servicesErr != nil {
		return nil, m.servicesErr
	}
	return collect(m.services, slugs), nil
}

func (m *mockTaxonomy) ConsultantIDsByIndustries(_ context.Context, slugs []string) ([]string, error) {
	if m.industriesErr != nil {
		return nil, m.industriesErr
	}
	return collect(m.industries, slugs), nil
}

func collect(index map[string][]string, slugs []string) []string {
	var ids []string
	for _, s := range slugs {
		ids = append(ids, index[s]...)
	}
	return ids
}

type mockResolver struct {
	fn    func(ctx context.Context, s spec.Spec) (page.Page, error)
	calls int
}

func (m *mockResolver) Resolve(ctx context.Context, s spec.Spec) (page.Page, error) {
	m.calls++
	return m.fn(ctx, s)
}

type recorded struct {
	state  strategy.State
	reason strategy.Reason
	err    error
}

type mockRecorder struct {
	got []recorded
}

func (m *mockRecorder) ObserveResolution(st strategy.State, r strategy.Reason, err error, _ time.Duration) {
	m.got = append(m.got, recorded{state: st, reason: r, err: err})
}

// --- Fixtures ---

var (
	base       = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	approvedAt = base.Add(24 * time.Hour)
)

func listing(id string, mut func(*consultant.Consultant)) consultant.Consultant {
	c := consultant.Consultant{
		ID:           id,
		CompanyName:  "Consultancy " + id,
		City:         "London",
		PricingLevel: 2,
		CreatedAt:    base,
		ApprovedAt:   &approvedAt,
	}
	if mut != nil {
		mut(&c)
	}
	return c
}

// directory is a mixed data set: fifteen approved listings plus two pending ones.
func directory() []consultant.Consultant {
	cs := make([]consultant.Consultant, 0, 17)
	for i := 1; i <= 15; i++ {
		i := i
		cs = append(cs, listing(fmt.Sprintf("c%02d", i), func(c *consultant.Consultant) {
			c.CreatedAt = base.Add(time.Duration(i) * time.Hour)
			c.ProfileViews = int64(i % 4)
			c.Featured = i%5 == 0
			c.Verified = i%2 == 0
			c.FreeConsultation = i%3 == 0
			c.PricingLevel = 1 + i%3
			h := 1 + i%6
			c.ResponseTimeHours = &h
			c.Rating = consultant.Rating{Average: float64(i % 5), Count: i % 7}
			switch i % 3 {
			case 0:
				c.City = "Birmingham"
			case 1:
				c.City = "London"
			default:
				c.City = "Birmingham and Solihull"
			}
			if i == 7 {
				c.Description = "VAT/Tax Compliance for importers"
			}
			if i == 8 {
				c.Description = "Customs Declarations"
			}
		}))
	}
	cs = append(cs,
		listing("pending-1", func(c *consultant.Consultant) { c.ApprovedAt = nil; c.Featured = true; c.City = "Birmingham" }),
		listing("pending-2", func(c *consultant.Consultant) { c.ApprovedAt = nil; c.Description = "VAT" }),
	)
	return cs
}

func parse(p spec.Params) spec.Spec {
	return spec.Parse(p, spec.DefaultLimits)
}
