package search

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"strconv"
	"testing"

	"github.com/findbrexitconsultants/directory/internal/domain"
	"github.com/findbrexitconsultants/directory/internal/domain/consultant"
	"github.com/findbrexitconsultants/directory/internal/domain/search/spec"
)

var shapes = []spec.Params{
	{},
	{Query: "vat"},
	{Query: "consultancy c1"},
	{VerifiedOnly: "true"},
	{FreeConsultation: "true", PricingLevel: "2"},
	{SortBy: "rating"},
	{SortBy: "response_time", Limit: "4", Page: "2"},
	{SortBy: "featured", VerifiedOnly: "true"},
	{SortBy: "newest", Limit: "1", Page: "15"},
	{Locations: []string{"birmingham"}},
	{Locations: []string{"london", "cardiff"}, SortBy: "newest"},
}

func resolvers(cs []consultant.Consultant) map[string]*Pipeline {
	return map[string]*Pipeline{
		// a full-scan source behind the server pipeline proves pushdown is not relied upon
		"server":   NewServer(fullScan(cs), &mockTaxonomy{}),
		"fallback": NewFallback(fullScan(cs)),
	}
}

func TestResolve_NeverReturnsPending(t *testing.T) {
	for name, r := range resolvers(directory()) {
		for _, p := range shapes {
			pg, err := r.Resolve(context.Background(), parse(p))
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", name, err)
			}
			for _, c := range pg.Consultants {
				if !c.Approved() {
					t.Errorf("%s %+v: pending consultant %s returned", name, p, c.ID)
				}
			}
		}
	}
}

func TestResolve_LocationIsExactCityMatch(t *testing.T) {
	for name, r := range resolvers(directory()) {
		pg, err := r.Resolve(context.Background(), parse(spec.Params{Locations: []string{"birmingham"}, Limit: "100"}))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if pg.Pagination.Total != 5 {
			t.Errorf("%s: total = %d, want 5", name, pg.Pagination.Total)
		}
		for _, c := range pg.Consultants {
			if c.City != "Birmingham" {
				t.Errorf("%s: city %q returned for birmingham", name, c.City)
			}
		}
	}
}

func TestResolve_BirminghamScenario(t *testing.T) {
	cs := []consultant.Consultant{
		listing("A", func(c *consultant.Consultant) { c.City = "Birmingham"; c.Verified = true }),
		listing("B", func(c *consultant.Consultant) { c.City = "London" }),
		listing("C", func(c *consultant.Consultant) { c.City = "Birmingham" }),
	}
	r := NewFallback(fullScan(cs))

	pg, err := r.Resolve(context.Background(), parse(spec.Params{Locations: []string{"birmingham"}}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sortedIDs(pg.Consultants); !reflect.DeepEqual(got, []string{"A", "C"}) {
		t.Errorf("ids = %v, want [A C]", got)
	}

	pg, err = r.Resolve(context.Background(), parse(spec.Params{Locations: []string{"birmingham"}, VerifiedOnly: "true"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sortedIDs(pg.Consultants); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("ids = %v, want [A]", got)
	}
}

func TestResolve_SecondPageOfFifteen(t *testing.T) {
	for name, r := range resolvers(directory()) {
		all, err := r.Resolve(context.Background(), parse(spec.Params{Limit: "100"}))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		pg, err := r.Resolve(context.Background(), parse(spec.Params{Page: "2", Limit: "12"}))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if len(pg.Consultants) != 3 || pg.Pagination.TotalPages != 2 || pg.Pagination.Total != 15 {
			t.Fatalf("%s: got %d results, pagination %+v", name, len(pg.Consultants), pg.Pagination)
		}
		want := consultant.IDs(all.Consultants[12:15])
		if got := consultant.IDs(pg.Consultants); !reflect.DeepEqual(got, want) {
			t.Errorf("%s: page 2 = %v, want ranks 13-15 %v", name, got, want)
		}
	}
}

func TestResolve_PagesPartitionTotal(t *testing.T) {
	for name, r := range resolvers(directory()) {
		for _, p := range shapes {
			p.Page, p.Limit = "1", "4"
			first, err := r.Resolve(context.Background(), parse(p))
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", name, err)
			}
			seen := map[string]bool{}
			sum := 0
			for n := 1; n <= first.Pagination.TotalPages; n++ {
				p.Page = strconv.Itoa(n)
				pg, err := r.Resolve(context.Background(), parse(p))
				if err != nil {
					t.Fatalf("%s: unexpected error: %v", name, err)
				}
				for _, c := range pg.Consultants {
					if seen[c.ID] {
						t.Errorf("%s %+v: %s appears on two pages", name, p, c.ID)
					}
					seen[c.ID] = true
				}
				sum += len(pg.Consultants)
			}
			if sum != first.Pagination.Total {
				t.Errorf("%s %+v: pages hold %d, total %d", name, p, sum, first.Pagination.Total)
			}
			wantPages := (first.Pagination.Total + 3) / 4
			if first.Pagination.TotalPages != wantPages {
				t.Errorf("%s %+v: totalPages %d, want %d", name, p, first.Pagination.TotalPages, wantPages)
			}
		}
	}
}

func TestResolve_Idempotent(t *testing.T) {
	for name, r := range resolvers(directory()) {
		for _, p := range shapes {
			a, err := r.Resolve(context.Background(), parse(p))
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", name, err)
			}
			b, err := r.Resolve(context.Background(), parse(p))
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", name, err)
			}
			if !reflect.DeepEqual(consultant.IDs(a.Consultants), consultant.IDs(b.Consultants)) ||
				a.Pagination != b.Pagination {
				t.Errorf("%s %+v: results differ between calls", name, p)
			}
		}
	}
}

func TestResolve_ServerAndFallbackAgree(t *testing.T) {
	cs := directory()
	server := NewServer(pushdown(cs), &mockTaxonomy{})
	fallback := NewFallback(fullScan(cs))

	for _, p := range shapes {
		s := parse(p)
		if s.HasLocations() || s.HasTaxonomy() {
			continue
		}
		a, err := server.Resolve(context.Background(), s)
		if err != nil {
			t.Fatalf("server: %v", err)
		}
		b, err := fallback.Resolve(context.Background(), s)
		if err != nil {
			t.Fatalf("fallback: %v", err)
		}
		if !reflect.DeepEqual(consultant.IDs(a.Consultants), consultant.IDs(b.Consultants)) {
			t.Errorf("%+v: server %v, fallback %v", p, consultant.IDs(a.Consultants), consultant.IDs(b.Consultants))
		}
		if a.Pagination != b.Pagination {
			t.Errorf("%+v: pagination %+v vs %+v", p, a.Pagination, b.Pagination)
		}
	}
}

func TestResolve_TextQuery(t *testing.T) {
	for name, r := range resolvers(directory()) {
		pg, err := r.Resolve(context.Background(), parse(spec.Params{Query: "VAT"}))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if got := consultant.IDs(pg.Consultants); !reflect.DeepEqual(got, []string{"c07"}) {
			t.Errorf("%s: ids = %v, want [c07]", name, got)
		}
	}
}

func TestServer_TaxonomyCombinesWithAnd(t *testing.T) {
	cs := []consultant.Consultant{listing("a", nil), listing("b", nil), listing("c", nil), listing("d", nil)}
	tax := &mockTaxonomy{
		services:   map[string][]string{"customs": {"a", "b"}, "vat": {"c"}},
		industries: map[string][]string{"retail": {"b", "c", "d"}},
	}
	r := NewServer(fullScan(cs), tax)

	tests := []struct {
		name string
		p    spec.Params
		want []string
	}{
		{"one service", spec.Params{ServiceTypes: []string{"customs"}}, []string{"a", "b"}},
		{"any service", spec.Params{ServiceTypes: []string{"customs,vat"}}, []string{"a", "b", "c"}},
		{"industry only", spec.Params{Industries: []string{"retail"}}, []string{"b", "c", "d"}},
		{"service and industry", spec.Params{ServiceTypes: []string{"customs"}, Industries: []string{"retail"}}, []string{"b"}},
		{"unknown slug", spec.Params{ServiceTypes: []string{"nothing"}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pg, err := r.Resolve(context.Background(), parse(tt.p))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := sortedIDs(pg.Consultants)
			if len(got) == 0 && len(tt.want) == 0 {
				if pg.Pagination.Total != 0 {
					t.Errorf("total = %d, want 0", pg.Pagination.Total)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ids = %v, want %v", got, tt.want)
			}
			if pg.Pagination.Total != len(tt.want) {
				t.Errorf("total = %d, want %d", pg.Pagination.Total, len(tt.want))
			}
		})
	}
}

func TestServer_TaxonomyFailureFailsTheAttempt(t *testing.T) {
	r := NewServer(fullScan(directory()), &mockTaxonomy{industriesErr: errors.New("permission denied")})

	_, err := r.Resolve(context.Background(), parse(spec.Params{Industries: []string{"retail"}}))
	if !errors.Is(err, domain.ErrTaxonomyLookup) {
		t.Fatalf("expected ErrTaxonomyLookup, got %v", err)
	}

	if _, err := r.Resolve(context.Background(), parse(spec.Params{})); err != nil {
		t.Errorf("lookup must not run without taxonomy slugs: %v", err)
	}
}

func TestFallback_IgnoresTaxonomy(t *testing.T) {
	cs := []consultant.Consultant{listing("a", nil), listing("b", nil)}
	r := NewFallback(fullScan(cs))
	if r.AppliesTaxonomy() {
		t.Fatal("fallback must not apply taxonomy")
	}

	pg, err := r.Resolve(context.Background(), parse(spec.Params{ServiceTypes: []string{"customs"}}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pg.Pagination.Total != 2 {
		t.Errorf("total = %d, want 2", pg.Pagination.Total)
	}
}

func TestResolve_SourceError(t *testing.T) {
	r := NewServer(failing(domain.ErrUpstreamUnavailable), &mockTaxonomy{})
	_, err := r.Resolve(context.Background(), parse(spec.Params{}))
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestResolve_EmptyResultIsNotAnError(t *testing.T) {
	r := NewFallback(fullScan(directory()))
	pg, err := r.Resolve(context.Background(), parse(spec.Params{Query: "no such consultant"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pg.Consultants == nil || len(pg.Consultants) != 0 || pg.Pagination.Total != 0 {
		t.Errorf("unexpected page %+v", pg)
	}
}

func sortedIDs(cs []consultant.Consultant) []string {
	ids := consultant.IDs(cs)
	sort.Strings(ids)
	return ids
}
