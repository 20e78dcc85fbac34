package snapshot

import (
	"time"

	domcons "github.com/findbrexitconsultants/directory/internal/domain/consultant"
)

// record is the cached JSON form of a consultant.
type record struct {
	ID                     string     `json:"id"`
	CompanyName            string     `json:"company_name"`
	ContactPerson          string     `json:"contact_person,omitempty"`
	Email                  string     `json:"email,omitempty"`
	Phone                  string     `json:"phone,omitempty"`
	Website                string     `json:"website,omitempty"`
	City                   string     `json:"city,omitempty"`
	Postcode               string     `json:"postcode,omitempty"`
	Description            string     `json:"description,omitempty"`
	YearsInBusiness        int        `json:"years_in_business,omitempty"`
	TeamSize               string     `json:"team_size,omitempty"`
	PricingLevel           int        `json:"pricing_level,omitempty"`
	ResponseTimeHours      *int       `json:"response_time_hours,omitempty"`
	FreeConsultation       bool       `json:"free_consultation,omitempty"`
	MinProjectSize         string     `json:"min_project_size,omitempty"`
	TypicalProjectDuration string     `json:"typical_project_duration,omitempty"`
	Verified               bool       `json:"verified,omitempty"`
	Featured               bool       `json:"featured,omitempty"`
	ApprovedAt             *time.Time `json:"approved_at"`
	ProfileViews           int64      `json:"profile_views"`
	CreatedAt              time.Time  `json:"created_at"`
	RatingAverage          float64    `json:"rating_avg,omitempty"`
	RatingCount            int        `json:"rating_count,omitempty"`
}

func toRecords(cs []domcons.Consultant) []record {
	out := make([]record, len(cs))
	for i, c := range cs {
		out[i] = record{
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
			PricingLevel:           c.PricingLevel,
			ResponseTimeHours:      c.ResponseTimeHours,
			FreeConsultation:       c.FreeConsultation,
			MinProjectSize:         c.MinProjectSize,
			TypicalProjectDuration: c.TypicalProjectDuration,
			Verified:               c.Verified,
			Featured:               c.Featured,
			ApprovedAt:             c.ApprovedAt,
			ProfileViews:           c.ProfileViews,
			CreatedAt:              c.CreatedAt,
			RatingAverage:          c.Rating.Average,
			RatingCount:            c.Rating.Count,
		}
	}
	return out
}

func fromRecords(rs []record) []domcons.Consultant {
	out := make([]domcons.Consultant, len(rs))
	for i, r := range rs {
		out[i] = domcons.Consultant{
			ID:                     r.ID,
			CompanyName:            r.CompanyName,
			ContactPerson:          r.ContactPerson,
			Email:                  r.Email,
			Phone:                  r.Phone,
			Website:                r.Website,
			City:                   r.City,
			Postcode:               r.Postcode,
			Description:            r.Description,
			YearsInBusiness:        r.YearsInBusiness,
			TeamSize:               r.TeamSize,
			PricingLevel:           r.PricingLevel,
			ResponseTimeHours:      r.ResponseTimeHours,
			FreeConsultation:       r.FreeConsultation,
			MinProjectSize:         r.MinProjectSize,
			TypicalProjectDuration: r.TypicalProjectDuration,
			Verified:               r.Verified,
			Featured:               r.Featured,
			ApprovedAt:             r.ApprovedAt,
			ProfileViews:           r.ProfileViews,
			CreatedAt:              r.CreatedAt,
			Rating:                 domcons.Rating{Average: r.RatingAverage, Count: r.RatingCount},
		}
	}
	return out
}
