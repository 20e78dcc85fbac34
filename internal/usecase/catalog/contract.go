package catalog

import (
	"context"

	domcons "github.com/findbrexitconsultants/directory/internal/domain/consultant"
	"github.com/findbrexitconsultants/directory/internal/domain/taxonomy"
)

// Profiles reads single approved consultants.
type Profiles interface {
	Get(ctx context.Context, id string) (domcons.Consultant, error)
}

// Taxonomies reads the service and industry reference data.
type Taxonomies interface {
	Catalog(ctx context.Context) (taxonomy.Catalog, error)
}

// ApprovedLister reads the full approved list.
type ApprovedLister interface {
	ListApproved(ctx context.Context) ([]domcons.Consultant, error)
}
