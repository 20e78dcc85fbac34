package chi

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	domcons "github.com/findbrexitconsultants/directory/internal/domain/consultant"
	"github.com/findbrexitconsultants/directory/internal/domain/search/location"
	"github.com/findbrexitconsultants/directory/internal/domain/search/page"
	"github.com/findbrexitconsultants/directory/internal/domain/search/spec"
	"github.com/findbrexitconsultants/directory/internal/domain/taxonomy"
	healthuc "github.com/findbrexitconsultants/directory/internal/usecase/health"
	searchuc "github.com/findbrexitconsultants/directory/internal/usecase/search"
)

// --- Mocks ---

type mockSearcher struct {
	fn   func(ctx context.Context, s spec.Spec) (page.Page, error)
	last spec.Spec
}

func (m *mockSearcher) Resolve(ctx context.Context, s spec.Spec) (page.Page, error) {
	m.last = s
	return m.fn(ctx, s)
}

type mockDirectory struct {
	fn   func(ctx context.Context, s spec.Spec) (searchuc.Outcome, error)
	last spec.Spec
}

func (m *mockDirectory) Resolve(ctx context.Context, s spec.Spec) (searchuc.Outcome, error) {
	m.last = s
	return m.fn(ctx, s)
}

type mockCatalog struct {
	getFn        func(ctx context.Context, id string) (domcons.Consultant, error)
	approvedFn   func(ctx context.Context) ([]domcons.Consultant, error)
	taxonomiesFn func(ctx context.Context) (taxonomy.Catalog, error)
}

func (m *mockCatalog) Get(ctx context.Context, id string) (domcons.Consultant, error) {
	return m.getFn(ctx, id)
}

func (m *mockCatalog) Approved(ctx context.Context) ([]domcons.Consultant, error) {
	return m.approvedFn(ctx)
}

func (m *mockCatalog) Taxonomies(ctx context.Context) (taxonomy.Catalog, error) {
	return m.taxonomiesFn(ctx)
}

func (m *mockCatalog) Locations() []location.Location {
	return location.All()
}

type mockViews struct {
	recordFn func(ctx context.Context, id string) error
	flushFn  func(ctx context.Context) (int64, error)
}

func (m *mockViews) Record(ctx context.Context, id string) error {
	return m.recordFn(ctx, id)
}

func (m *mockViews) Flush(ctx context.Context) (int64, error) {
	return m.flushFn(ctx)
}

type mockSnapshot struct {
	calls int
	err   error
}

func (m *mockSnapshot) Invalidate(context.Context) error {
	m.calls++
	return m.err
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report {
	return m.report
}

// --- Fixtures ---

const profileID = "8f14e45f-ceea-467f-a0e6-d2a7f3c2b1aa"

var created = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func sample(id string) domcons.Consultant {
	approved := created.Add(time.Hour)
	hours := 4
	return domcons.Consultant{
		ID:                id,
		CompanyName:       "Channel Trade Advisory",
		City:              "Birmingham",
		PricingLevel:      2,
		ResponseTimeHours: &hours,
		Verified:          true,
		ApprovedAt:        &approved,
		CreatedAt:         created,
		Rating:            domcons.Rating{Average: 4.5, Count: 2},
	}
}

func okPage(s spec.Spec, cs ...domcons.Consultant) page.Page {
	return page.Of(cs, s.Page(), s.Limit())
}

func newDeps() Deps {
	return Deps{
		Server: &mockSearcher{fn: func(_ context.Context, s spec.Spec) (page.Page, error) {
			return okPage(s, sample(profileID)), nil
		}},
		Directory: &mockDirectory{fn: func(_ context.Context, s spec.Spec) (searchuc.Outcome, error) {
			return searchuc.Outcome{Page: okPage(s, sample(profileID)), State: "server", TaxonomyApplied: true}, nil
		}},
		Catalog: &mockCatalog{
			getFn: func(_ context.Context, id string) (domcons.Consultant, error) { return sample(id), nil },
			approvedFn: func(context.Context) ([]domcons.Consultant, error) {
				return []domcons.Consultant{sample("a"), sample("b")}, nil
			},
			taxonomiesFn: func(context.Context) (taxonomy.Catalog, error) {
				return taxonomy.Catalog{
					Services:   []taxonomy.Term{{Name: "Customs", Slug: "customs"}},
					Industries: []taxonomy.Term{{Name: "Retail", Slug: "retail"}},
				}, nil
			},
		},
		Views: &mockViews{
			recordFn: func(context.Context, string) error { return nil },
			flushFn:  func(context.Context) (int64, error) { return 0, nil },
		},
		Snapshot: &mockSnapshot{},
		Health:   &mockHealth{report: healthuc.Report{Status: healthuc.Healthy}},
	}
}

func newTestHandler(deps Deps, apiKeys ...string) http.Handler {
	return NewServer(deps, spec.DefaultLimits, apiKeys, zap.NewNop()).Handler()
}
