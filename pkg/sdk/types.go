package directory

import (
	"time"

	domcons "github.com/findbrexitconsultants/directory/internal/domain/consultant"
	"github.com/findbrexitconsultants/directory/internal/domain/search/page"
)

// Rating is the aggregate of approved reviews.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Consultant is an approved directory listing.
type Consultant struct {
	ID                     string     `json:"id"`
	CompanyName            string     `json:"companyName"`
	ContactPerson          string     `json:"contactPerson,omitempty"`
	Email                  string     `json:"email,omitempty"`
	Phone                  string     `json:"phone,omitempty"`
	Website                string     `json:"website,omitempty"`
	City                   string     `json:"city,omitempty"`
	Postcode               string     `json:"postcode,omitempty"`
	Description            string     `json:"description,omitempty"`
	YearsInBusiness        int        `json:"yearsInBusiness,omitempty"`
	TeamSize               string     `json:"teamSize,omitempty"`
	PricingLevel           *int       `json:"pricingLevel,omitempty"`
	ResponseTimeHours      *int       `json:"responseTimeHours,omitempty"`
	FreeConsultation       bool       `json:"freeConsultation"`
	MinProjectSize         string     `json:"minProjectSize,omitempty"`
	TypicalProjectDuration string     `json:"typicalProjectDuration,omitempty"`
	Verified               bool       `json:"verified"`
	Featured               bool       `json:"featured"`
	ApprovedAt             *time.Time `json:"approvedAt"`
	ProfileViews           int64      `json:"profileViews"`
	CreatedAt              time.Time  `json:"createdAt"`
	Rating                 Rating     `json:"rating"`
}

// Pagination describes where a page sits in the full result set.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Result is one page of a search plus how it was produced.
type Result struct {
	Consultants []Consultant
	Pagination  Pagination

	// Strategy is "server" or "fallback".
	Strategy string
	// Reason explains a fallback: "locations", "server_error", "server_timeout" or "taxonomy_lookup".
	Reason string
	// Notice is a user-facing hint set when the server attempt failed.
	Notice string
	// TaxonomyFiltersApplied is false when service or industry slugs were ignored.
	TaxonomyFiltersApplied bool
}

// Term is one service or industry.
type Term struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Taxonomies lists the service and industry terms.
type Taxonomies struct {
	Services   []Term `json:"services"`
	Industries []Term `json:"industries"`
}

// Location is one entry of the location filter table.
type Location struct {
	Slug string `json:"slug"`
	City string `json:"city"`
}

// HealthStatus represents the aggregated service health.
type HealthStatus struct {
	Status  string            `json:"status"` // "ok", "degraded", "error"
	Checks  map[string]string `json:"checks"` // component → "ok"/"error"
	Version string            `json:"version"`
}

// --- wire envelopes ---

type searchEnvelope struct {
	Consultants []Consultant `json:"consultants"`
	Pagination  Pagination   `json:"pagination"`
}

type approvedEnvelope struct {
	Consultants []Consultant `json:"consultants"`
}

type locationsEnvelope struct {
	Locations []Location `json:"locations"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type flushEnvelope struct {
	Flushed  int64 `json:"flushed"`
	Complete bool  `json:"complete"`
}

// --- converters ---

func toDomain(c Consultant) domcons.Consultant {
	d := domcons.Consultant{
		ID:                     c.ID,
		CompanyName:            c.CompanyName,
		ContactPerson:          c.ContactPerson,
		Email:                  c.Email,
		Phone:                  c.Phone,
		Website:                c.Website,
		City:                   c.City,
		Postcode:               c.Postcode,
		Description:            c.Description,
		YearsInBusiness:        c.YearsInBusiness,
		TeamSize:               c.TeamSize,
		ResponseTimeHours:      c.ResponseTimeHours,
		FreeConsultation:       c.FreeConsultation,
		MinProjectSize:         c.MinProjectSize,
		TypicalProjectDuration: c.TypicalProjectDuration,
		Verified:               c.Verified,
		Featured:               c.Featured,
		ApprovedAt:             c.ApprovedAt,
		ProfileViews:           c.ProfileViews,
		CreatedAt:              c.CreatedAt,
		Rating:                 domcons.Rating{Average: c.Rating.Average, Count: c.Rating.Count},
	}
	if c.PricingLevel != nil {
		d.PricingLevel = *c.PricingLevel
	}
	return d
}

func fromDomain(d domcons.Consultant) Consultant {
	c := Consultant{
		ID:                     d.ID,
		CompanyName:            d.CompanyName,
		ContactPerson:          d.ContactPerson,
		Email:                  d.Email,
		Phone:                  d.Phone,
		Website:                d.Website,
		City:                   d.City,
		Postcode:               d.Postcode,
		Description:            d.Description,
		YearsInBusiness:        d.YearsInBusiness,
		TeamSize:               d.TeamSize,
		ResponseTimeHours:      d.ResponseTimeHours,
		FreeConsultation:       d.FreeConsultation,
		MinProjectSize:         d.MinProjectSize,
		TypicalProjectDuration: d.TypicalProjectDuration,
		Verified:               d.Verified,
		Featured:               d.Featured,
		ApprovedAt:             d.ApprovedAt,
		ProfileViews:           d.ProfileViews,
		CreatedAt:              d.CreatedAt,
		Rating:                 Rating{Average: d.Rating.Average, Count: d.Rating.Count},
	}
	if d.HasPricing() {
		lvl := d.PricingLevel
		c.PricingLevel = &lvl
	}
	return c
}

func toDomainAll(cs []Consultant) []domcons.Consultant {
	out := make([]domcons.Consultant, len(cs))
	for i, c := range cs {
		out[i] = toDomain(c)
	}
	return out
}

func fromPage(p page.Page) ([]Consultant, Pagination) {
	cs := make([]Consultant, len(p.Consultants))
	for i, c := range p.Consultants {
		cs[i] = fromDomain(c)
	}
	return cs, Pagination{
		Page:       p.Pagination.Page,
		Limit:      p.Pagination.Limit,
		Total:      p.Pagination.Total,
		TotalPages: p.Pagination.TotalPages,
	}
}
