package search

import (
	"context"
	"fmt"

	"github.com/findbrexitconsultants/directory/internal/domain"
	"github.com/findbrexitconsultants/directory/internal/domain/consultant"
	"github.com/findbrexitconsultants/directory/internal/domain/search/filter"
	"github.com/findbrexitconsultants/directory/internal/domain/search/order"
	"github.com/findbrexitconsultants/directory/internal/domain/search/page"
	"github.com/findbrexitconsultants/directory/internal/domain/search/spec"
)

// Pipeline is the single filter-evaluate-sort-paginate implementation.
// Resolvers differ only in their Source and in whether taxonomy slugs are resolved.
type Pipeline struct {
	source   Source
	taxonomy TaxonomyIndex
}

var _ Resolver = (*Pipeline)(nil)

// NewServer creates the server-side resolver: a pushdown source plus the
// junction-table taxonomy post-filter.
func NewServer(source Source, taxonomy TaxonomyIndex) *Pipeline {
	return &Pipeline{source: source, taxonomy: taxonomy}
}

// NewFallback creates the fallback resolver over a full-scan source.
// Service and industry slugs are not applied on this path.
func NewFallback(source Source) *Pipeline {
	return &Pipeline{source: source}
}

// AppliesTaxonomy reports whether this pipeline narrows by service and industry slugs.
func (p *Pipeline) AppliesTaxonomy() bool {
	return p.taxonomy != nil
}

// Resolve loads candidates, filters, sorts, narrows by taxonomy and paginates.
func (p *Pipeline) Resolve(ctx context.Context, s spec.Spec) (page.Page, error) {
	candidates, err := p.source.Candidates(ctx, s)
	if err != nil {
		return page.Page{}, fmt.Errorf("load candidates: %w", err)
	}

	matched := filter.Apply(candidates, s)
	order.Sort(matched, s.SortKey())

	if p.taxonomy != nil && s.HasTaxonomy() {
		matched, err = p.narrow(ctx, matched, s)
		if err != nil {
			return page.Page{}, err
		}
	}

	return page.Of(matched, s.Page(), s.Limit()), nil
}

// narrow intersects cs with the service id set and, independently, with the
// industry id set. Within one taxonomy any slug matches; across taxonomies
// both must match.
func (p *Pipeline) narrow(
	ctx context.Context, cs []consultant.Consultant, s spec.Spec,
) ([]consultant.Consultant, error) {
	if slugs := s.ServiceSlugs(); len(slugs) > 0 {
		ids, err := p.taxonomy.ConsultantIDsByServices(ctx, slugs)
		if err != nil {
			return nil, fmt.Errorf("%w: services: %w", domain.ErrTaxonomyLookup, err)
		}
		cs = filter.Keep(cs, filter.Member(filter.NewIDSet(ids)))
	}
	if slugs := s.IndustrySlugs(); len(slugs) > 0 {
		ids, err := p.taxonomy.ConsultantIDsByIndustries(ctx, slugs)
		if err != nil {
			return nil, fmt.Errorf("%w: industries: %w", domain.ErrTaxonomyLookup, err)
		}
		cs = filter.Keep(cs, filter.Member(filter.NewIDSet(ids)))
	}
	return cs, nil
}
