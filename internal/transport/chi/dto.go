package chi

import (
	"time"

	domcons "github.com/findbrexitconsultants/directory/internal/domain/consultant"
	"github.com/findbrexitconsultants/directory/internal/domain/search/location"
	"github.com/findbrexitconsultants/directory/internal/domain/search/page"
	"github.com/findbrexitconsultants/directory/internal/domain/taxonomy"
	searchuc "github.com/findbrexitconsultants/directory/internal/usecase/search"
)

type ratingDTO struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type consultantDTO struct {
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
	Rating                 ratingDTO  `json:"rating"`
}

type paginationDTO struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type metaDTO struct {
	Strategy               string `json:"strategy"`
	Reason                 string `json:"reason,omitempty"`
	Notice                 string `json:"notice,omitempty"`
	TaxonomyFiltersApplied bool   `json:"taxonomyFiltersApplied"`
}

type searchResponse struct {
	Consultants []consultantDTO `json:"consultants"`
	Pagination  paginationDTO   `json:"pagination"`
	Meta        *metaDTO        `json:"meta,omitempty"`
}

type approvedResponse struct {
	Consultants []consultantDTO `json:"consultants"`
	Total       int             `json:"total"`
}

type termDTO struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type taxonomiesResponse struct {
	Services   []termDTO `json:"services"`
	Industries []termDTO `json:"industries"`
}

type locationDTO struct {
	Slug string `json:"slug"`
	City string `json:"city"`
}

type locationsResponse struct {
	Locations []locationDTO `json:"locations"`
}

type flushResponse struct {
	Flushed  int64 `json:"flushed"`
	Complete bool  `json:"complete"`
}

type healthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Version string            `json:"version"`
	Commit  string            `json:"commit"`
}

func consultantToDTO(c domcons.Consultant) consultantDTO {
	d := consultantDTO{
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
		Rating:                 ratingDTO{Average: c.Rating.Average, Count: c.Rating.Count},
	}
	if c.HasPricing() {
		level := c.PricingLevel
		d.PricingLevel = &level
	}
	return d
}

func consultantsToDTO(cs []domcons.Consultant) []consultantDTO {
	out := make([]consultantDTO, len(cs))
	for i, c := range cs {
		out[i] = consultantToDTO(c)
	}
	return out
}

func pageToResponse(p page.Page) searchResponse {
	return searchResponse{
		Consultants: consultantsToDTO(p.Consultants),
		Pagination: paginationDTO{
			Page:       p.Pagination.Page,
			Limit:      p.Pagination.Limit,
			Total:      p.Pagination.Total,
			TotalPages: p.Pagination.TotalPages,
		},
	}
}

func outcomeToResponse(o searchuc.Outcome) searchResponse {
	resp := pageToResponse(o.Page)
	resp.Meta = &metaDTO{
		Strategy:               string(o.State),
		Reason:                 string(o.Reason),
		Notice:                 o.Notice,
		TaxonomyFiltersApplied: o.TaxonomyApplied,
	}
	return resp
}

func termsToDTO(ts []taxonomy.Term) []termDTO {
	out := make([]termDTO, len(ts))
	for i, t := range ts {
		out[i] = termDTO{Name: t.Name, Slug: t.Slug}
	}
	return out
}

func locationsToDTO(ls []location.Location) []locationDTO {
	out := make([]locationDTO, len(ls))
	for i, l := range ls {
		out[i] = locationDTO{Slug: l.Slug, City: l.City}
	}
	return out
}
