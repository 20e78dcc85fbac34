package chi

import (
	"context"

	domcons "github.com/findbrexitconsultants/directory/internal/domain/consultant"
	"github.com/findbrexitconsultants/directory/internal/domain/search/location"
	"github.com/findbrexitconsultants/directory/internal/domain/search/page"
	"github.com/findbrexitconsultants/directory/internal/domain/search/spec"
	"github.com/findbrexitconsultants/directory/internal/domain/taxonomy"
	healthuc "github.com/findbrexitconsultants/directory/internal/usecase/health"
	searchuc "github.com/findbrexitconsultants/directory/internal/usecase/search"
)

// Searcher runs one resolver directly, without the fallback.
type Searcher interface {
	Resolve(ctx context.Context, s spec.Spec) (page.Page, error)
}

// Directory runs the full server-then-fallback resolution.
type Directory interface {
	Resolve(ctx context.Context, s spec.Spec) (searchuc.Outcome, error)
}

// Catalog serves the read-only data around search.
type Catalog interface {
	Get(ctx context.Context, id string) (domcons.Consultant, error)
	Approved(ctx context.Context) ([]domcons.Consultant, error)
	Taxonomies(ctx context.Context) (taxonomy.Catalog, error)
	Locations() []location.Location
}

// Views records and flushes profile views.
type Views interface {
	Record(ctx context.Context, id string) error
	Flush(ctx context.Context) (int64, error)
}

// SnapshotInvalidator drops the cached approved list.
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context) error
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
