package consultant

import "time"

// Rating is the aggregate of approved reviews for one consultant.
type Rating struct {
	Average float64
	Count   int
}

// Consultant is a directory listing as read by the search pipeline.
type Consultant struct {
	ID            string
	CompanyName   string
	ContactPerson string
	Email         string
	Phone         string
	Website       string
	City          string
	Postcode      string
	Description   string

	YearsInBusiness        int
	TeamSize               string
	PricingLevel           int  // 1..3, 0 when unknown
	ResponseTimeHours      *int // nil when the consultant did not state one
	FreeConsultation       bool
	MinProjectSize         string
	TypicalProjectDuration string

	Verified     bool
	Featured     bool
	ApprovedAt   *time.Time
	ProfileViews int64
	CreatedAt    time.Time

	Rating Rating
}

// Approved reports whether moderation has published the listing.
func (c Consultant) Approved() bool {
	return c.ApprovedAt != nil
}

// HasPricing reports whether the listing carries a valid pricing level.
func (c Consultant) HasPricing() bool {
	return c.PricingLevel >= MinPricingLevel && c.PricingLevel <= MaxPricingLevel
}

// Pricing level bounds.
const (
	MinPricingLevel = 1
	MaxPricingLevel = 3
)

// IDs returns the identifiers of cs in order.
func IDs(cs []Consultant) []string {
	ids := make([]string, len(cs))
	for i, c := range cs {
		ids[i] = c.ID
	}
	return ids
}
