package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/findbrexitconsultants/directory/internal/domain/search/sortkey"
	"github.com/findbrexitconsultants/directory/internal/domain/search/spec"
	"github.com/findbrexitconsultants/directory/internal/domain/search/strategy"
)

// SortKey selects the result ordering.
type SortKey string

// Sort keys.
const (
	SortRelevance    SortKey = SortKey(sortkey.Relevance)
	SortFeatured     SortKey = SortKey(sortkey.Featured)
	SortRating       SortKey = SortKey(sortkey.Rating)
	SortResponseTime SortKey = SortKey(sortkey.ResponseTime)
	SortNewest       SortKey = SortKey(sortkey.Newest)
)

// SearchBuilder is a fluent builder for consultant searches.
type SearchBuilder struct {
	client *Client
	params spec.Params
}

// Query sets the free-text query matched against company name, description, city and contact.
func (b *SearchBuilder) Query(q string) *SearchBuilder {
	b.params.Query = q
	return b
}

// Services narrows to consultants offering any of the given service slugs.
func (b *SearchBuilder) Services(slugs ...string) *SearchBuilder {
	b.params.ServiceTypes = append(b.params.ServiceTypes, slugs...)
	return b
}

// Industries narrows to consultants serving any of the given industry slugs.
func (b *SearchBuilder) Industries(slugs ...string) *SearchBuilder {
	b.params.Industries = append(b.params.Industries, slugs...)
	return b
}

// Locations narrows to consultants in the cities behind the given location slugs.
func (b *SearchBuilder) Locations(slugs ...string) *SearchBuilder {
	b.params.Locations = append(b.params.Locations, slugs...)
	return b
}

// MaxPricing keeps listings priced at or below level (1..3).
func (b *SearchBuilder) MaxPricing(level int) *SearchBuilder {
	b.params.PricingLevel = fmt.Sprint(level)
	return b
}

// VerifiedOnly keeps verified listings only.
func (b *SearchBuilder) VerifiedOnly() *SearchBuilder {
	b.params.VerifiedOnly = "true"
	return b
}

// FreeConsultation keeps listings offering a free consultation.
func (b *SearchBuilder) FreeConsultation() *SearchBuilder {
	b.params.FreeConsultation = "true"
	return b
}

// SortBy sets the ordering. Default: SortRelevance.
func (b *SearchBuilder) SortBy(k SortKey) *SearchBuilder {
	b.params.SortBy = string(k)
	return b
}

// Page sets the 1-indexed page.
func (b *SearchBuilder) Page(n int) *SearchBuilder {
	b.params.Page = fmt.Sprint(n)
	return b
}

// Limit sets the page size.
func (b *SearchBuilder) Limit(n int) *SearchBuilder {
	b.params.Limit = fmt.Sprint(n)
	return b
}

// Do runs the search: the service first, then the local fallback when the
// service fails or location slugs are set.
func (b *SearchBuilder) Do(ctx context.Context) (_ Result, err error) {
	start := time.Now()
	defer func() { b.client.obs.observe("search", start, err) }()

	out, err := b.client.resolution.Resolve(ctx, b.spec())
	if err != nil {
		return Result{}, fmt.Errorf("directory: search: %w", err)
	}
	b.client.obs.observeStrategy(out.State, out.Reason)

	cs, pg := fromPage(out.Page)
	return Result{
		Consultants:            cs,
		Pagination:             pg,
		Strategy:               string(out.State),
		Reason:                 string(out.Reason),
		Notice:                 out.Notice,
		TaxonomyFiltersApplied: out.TaxonomyApplied,
	}, nil
}

// Server runs the search on the service only, without a fallback.
func (b *SearchBuilder) Server(ctx context.Context) (_ Result, err error) {
	start := time.Now()
	defer func() { b.client.obs.observe("search_server", start, err) }()

	p, err := b.client.server.Resolve(ctx, b.spec())
	if err != nil {
		return Result{}, err
	}
	cs, pg := fromPage(p)
	return Result{
		Consultants:            cs,
		Pagination:             pg,
		Strategy:               string(strategy.ServerAttempt),
		TaxonomyFiltersApplied: true,
	}, nil
}

func (b *SearchBuilder) spec() spec.Spec {
	return spec.Parse(b.params, b.client.limits)
}
