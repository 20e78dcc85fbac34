// Package spec defines the Filter Specification shared by every resolver.
// Raw request parameters are parsed once here; malformed values are treated as absent.
package spec

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/findbrexitconsultants/directory/internal/domain/consultant"
	"github.com/findbrexitconsultants/directory/internal/domain/search/location"
	"github.com/findbrexitconsultants/directory/internal/domain/search/sortkey"
)

// Search parameter limits.
const (
	DefaultLimit = 12
	MaxLimit     = 100
	maxPage      = 1 << 20
)

// Wire names of the request parameters.
const (
	ParamQuery            = "query"
	ParamServiceTypes     = "serviceTypes"
	ParamIndustries       = "industries"
	ParamLocations        = "locations"
	ParamPricingLevel     = "pricingLevel"
	ParamVerifiedOnly     = "verifiedOnly"
	ParamFreeConsultation = "freeConsultation"
	ParamSortBy           = "sortBy"
	ParamPage             = "page"
	ParamLimit            = "limit"
)

// Limits bounds the page size.
type Limits struct {
	Default int
	Max     int
}

// DefaultLimits are used when the caller does not configure page sizes.
var DefaultLimits = Limits{Default: DefaultLimit, Max: MaxLimit}

// Params holds raw, unvalidated request parameters.
// List fields accept comma-separated items, repeated values, or both.
type Params struct {
	Query            string
	ServiceTypes     []string
	Industries       []string
	Locations        []string
	PricingLevel     string
	VerifiedOnly     string
	FreeConsultation string
	SortBy           string
	Page             string
	Limit            string
}

// Spec is a normalized Filter Specification.
type Spec struct {
	query            string
	services         []string
	industries       []string
	locations        []string
	maxPricing       int // 0 = no constraint
	verifiedOnly     bool
	freeConsultation bool
	sort             sortkey.Key
	page             int
	limit            int
}

// Parse normalizes raw parameters. It never fails.
func Parse(p Params, l Limits) Spec {
	if l.Default <= 0 {
		l.Default = DefaultLimit
	}
	if l.Max <= 0 {
		l.Max = MaxLimit
	}
	if l.Default > l.Max {
		l.Default = l.Max
	}

	return Spec{
		query:            normalizeQuery(p.Query),
		services:         slugSet(p.ServiceTypes, true),
		industries:       slugSet(p.Industries, true),
		locations:        slugSet(p.Locations, false),
		maxPricing:       parsePricing(p.PricingLevel),
		verifiedOnly:     isTrue(p.VerifiedOnly),
		freeConsultation: isTrue(p.FreeConsultation),
		sort:             sortkey.Parse(p.SortBy),
		page:             parsePage(p.Page),
		limit:            parseLimit(p.Limit, l),
	}
}

// Query returns the trimmed free-text query.
func (s Spec) Query() string { return s.query }

// ServiceSlugs returns the requested service slugs.
func (s Spec) ServiceSlugs() []string { return s.services }

// IndustrySlugs returns the requested industry slugs.
func (s Spec) IndustrySlugs() []string { return s.industries }

// LocationSlugs returns the requested location slugs.
func (s Spec) LocationSlugs() []string { return s.locations }

// Cities returns the location slugs resolved through the location table.
func (s Spec) Cities() []string { return location.Cities(s.locations) }

// MaxPricingLevel returns the pricing ceiling and whether one was requested.
func (s Spec) MaxPricingLevel() (int, bool) { return s.maxPricing, s.maxPricing > 0 }

// VerifiedOnly reports whether only verified consultants are requested.
func (s Spec) VerifiedOnly() bool { return s.verifiedOnly }

// FreeConsultationOnly reports whether only consultants offering a free consultation are requested.
func (s Spec) FreeConsultationOnly() bool { return s.freeConsultation }

// SortKey returns the ordering.
func (s Spec) SortKey() sortkey.Key { return s.sort }

// Page returns the 1-indexed page number.
func (s Spec) Page() int { return s.page }

// Limit returns the page size.
func (s Spec) Limit() int { return s.limit }

// Offset returns the index of the first result on the page.
func (s Spec) Offset() int { return (s.page - 1) * s.limit }

// HasTaxonomy reports whether service or industry slugs were requested.
func (s Spec) HasTaxonomy() bool { return len(s.services) > 0 || len(s.industries) > 0 }

// HasLocations reports whether location slugs were requested.
func (s Spec) HasLocations() bool { return len(s.locations) > 0 }

// Values encodes the spec using the wire parameter names.
// Parsing FromValues(s.Values()) under the same Limits reproduces s.
func (s Spec) Values() url.Values {
	v := url.Values{}
	if s.query != "" {
		v.Set(ParamQuery, s.query)
	}
	if len(s.services) > 0 {
		v.Set(ParamServiceTypes, strings.Join(s.services, ","))
	}
	if len(s.industries) > 0 {
		v.Set(ParamIndustries, strings.Join(s.industries, ","))
	}
	if len(s.locations) > 0 {
		v.Set(ParamLocations, strings.Join(s.locations, ","))
	}
	if s.maxPricing > 0 {
		v.Set(ParamPricingLevel, strconv.Itoa(s.maxPricing))
	}
	if s.verifiedOnly {
		v.Set(ParamVerifiedOnly, "true")
	}
	if s.freeConsultation {
		v.Set(ParamFreeConsultation, "true")
	}
	v.Set(ParamSortBy, string(s.sort))
	v.Set(ParamPage, strconv.Itoa(s.page))
	v.Set(ParamLimit, strconv.Itoa(s.limit))
	return v
}

// FromValues reads raw parameters from a query string.
func FromValues(v url.Values) Params {
	return Params{
		Query:            v.Get(ParamQuery),
		ServiceTypes:     v[ParamServiceTypes],
		Industries:       v[ParamIndustries],
		Locations:        v[ParamLocations],
		PricingLevel:     v.Get(ParamPricingLevel),
		VerifiedOnly:     v.Get(ParamVerifiedOnly),
		FreeConsultation: v.Get(ParamFreeConsultation),
		SortBy:           v.Get(ParamSortBy),
		Page:             v.Get(ParamPage),
		Limit:            v.Get(ParamLimit),
	}
}

func normalizeQuery(q string) string {
	return strings.TrimSpace(q)
}

func slugSet(raw []string, lower bool) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			part = strings.TrimSpace(part)
			if lower {
				part = strings.ToLower(part)
			}
			if part == "" {
				continue
			}
			if _, dup := seen[part]; dup {
				continue
			}
			seen[part] = struct{}{}
			out = append(out, part)
		}
	}
	return out
}

func parsePricing(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < consultant.MinPricingLevel || n > consultant.MaxPricingLevel {
		return 0
	}
	return n
}

func isTrue(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "true")
}

func parsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	if n > maxPage {
		return maxPage
	}
	return n
}

func parseLimit(raw string, l Limits) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return l.Default
	}
	if n > l.Max {
		return l.Max
	}
	return n
}
