// Package filter evaluates a Filter Specification against consultant records.
// Every resolver runs its candidates through Apply, whatever the data-access path.
package filter

import (
	"strings"

	"github.com/findbrexitconsultants/directory/internal/domain/consultant"
	"github.com/findbrexitconsultants/directory/internal/domain/search/spec"
)

// Predicate reports whether a consultant satisfies one clause.
type Predicate func(c consultant.Consultant) bool

// Approved admits published listings only.
func Approved() Predicate {
	return func(c consultant.Consultant) bool { return c.Approved() }
}

// Location admits consultants whose city equals one of cities exactly.
func Location(cities []string) Predicate {
	set := make(map[string]struct{}, len(cities))
	for _, city := range cities {
		set[city] = struct{}{}
	}
	return func(c consultant.Consultant) bool {
		_, ok := set[c.City]
		return ok
	}
}

// Text admits consultants whose company name, description, contact person or city
// contains query, ignoring case.
func Text(query string) Predicate {
	needle := strings.ToLower(query)
	return func(c consultant.Consultant) bool {
		for _, field := range [...]string{c.CompanyName, c.Description, c.ContactPerson, c.City} {
			if strings.Contains(strings.ToLower(field), needle) {
				return true
			}
		}
		return false
	}
}

// Verified admits verified consultants.
func Verified() Predicate {
	return func(c consultant.Consultant) bool { return c.Verified }
}

// FreeConsultation admits consultants offering a free first consultation.
func FreeConsultation() Predicate {
	return func(c consultant.Consultant) bool { return c.FreeConsultation }
}

// MaxPricing admits consultants priced at or below level. Unknown pricing never matches.
func MaxPricing(level int) Predicate {
	return func(c consultant.Consultant) bool {
		return c.HasPricing() && c.PricingLevel <= level
	}
}

// Member admits consultants whose id is in ids.
func Member(ids IDSet) Predicate {
	return func(c consultant.Consultant) bool { return ids.Has(c.ID) }
}

// For builds the predicate chain of s in evaluation order:
// approval, location, text, verified, free consultation, pricing.
// Clauses without a constraint are omitted. Taxonomy slugs are not part of
// the chain; they are resolved against the record store by the caller.
func For(s spec.Spec) []Predicate {
	preds := []Predicate{Approved()}
	if s.HasLocations() {
		preds = append(preds, Location(s.Cities()))
	}
	if q := s.Query(); q != "" {
		preds = append(preds, Text(q))
	}
	if s.VerifiedOnly() {
		preds = append(preds, Verified())
	}
	if s.FreeConsultationOnly() {
		preds = append(preds, FreeConsultation())
	}
	if lvl, ok := s.MaxPricingLevel(); ok {
		preds = append(preds, MaxPricing(lvl))
	}
	return preds
}

// Matches reports whether c satisfies every clause of s.
func Matches(c consultant.Consultant, s spec.Spec) bool {
	return all(c, For(s))
}

// Apply returns the consultants satisfying s, preserving input order.
func Apply(cs []consultant.Consultant, s spec.Spec) []consultant.Consultant {
	return Keep(cs, For(s)...)
}

// Keep returns the consultants satisfying every predicate, preserving input order.
func Keep(cs []consultant.Consultant, preds ...Predicate) []consultant.Consultant {
	out := make([]consultant.Consultant, 0, len(cs))
	for _, c := range cs {
		if all(c, preds) {
			out = append(out, c)
		}
	}
	return out
}

func all(c consultant.Consultant, preds []Predicate) bool {
	for _, p := range preds {
		if !p(c) {
			return false
		}
	}
	return true
}

// IDSet is a set of consultant identifiers.
type IDSet map[string]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids []string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}
