package search

import (
	"context"
	"time"

	"github.com/findbrexitconsultants/directory/internal/domain/consultant"
	"github.com/findbrexitconsultants/directory/internal/domain/search/page"
	"github.com/findbrexitconsultants/directory/internal/domain/search/spec"
	"github.com/findbrexitconsultants/directory/internal/domain/search/strategy"
)

// Source supplies candidate consultants for a spec.
// A pushdown source may prune with the filters; a full-scan source ignores them.
// Candidates are always re-evaluated in-process, so a source may over-return.
type Source interface {
	Candidates(ctx context.Context, s spec.Spec) ([]consultant.Consultant, error)
}

// TaxonomyIndex resolves taxonomy slugs to consultant ids through the junction tables.
type TaxonomyIndex interface {
	ConsultantIDsByServices(ctx context.Context, slugs []string) ([]string, error)
	ConsultantIDsByIndustries(ctx context.Context, slugs []string) ([]string, error)
}

// Resolver turns a spec into a page of results.
type Resolver interface {
	Resolve(ctx context.Context, s spec.Spec) (page.Page, error)
}

// Recorder observes finished resolutions.
type Recorder interface {
	ObserveResolution(state strategy.State, reason strategy.Reason, err error, elapsed time.Duration)
}
