package consultant

import (
	"database/sql"

	domcons "github.com/findbrexitconsultants/directory/internal/domain/consultant"
)

// columns is the projection every consultant query scans through scanRow.
// Optional text columns are coalesced so that NULL and "" read the same.
const columns = `c.id, c.company_name,
	COALESCE(c.contact_person, ''), COALESCE(c.email, ''), COALESCE(c.phone, ''),
	COALESCE(c.website, ''), COALESCE(c.city, ''), COALESCE(c.postcode, ''),
	COALESCE(c.description, ''), COALESCE(c.years_in_business, 0), COALESCE(c.team_size, ''),
	COALESCE(c.pricing_level, 0), c.response_time_hours, c.free_consultation,
	COALESCE(c.min_project_size, ''), COALESCE(c.typical_project_duration, ''),
	c.verified, c.featured, c.approved_at, c.profile_views, c.created_at,
	COALESCE(r.avg_rating, 0), COALESCE(r.review_count, 0)`

// from joins the approved-review aggregate onto the consultant relation.
const from = `FROM consultants c
LEFT JOIN (
	SELECT consultant_id, AVG(rating)::float8 AS avg_rating, COUNT(*) AS review_count
	FROM reviews
	WHERE approved
	GROUP BY consultant_id
) r ON r.consultant_id = c.id`

type scanner interface {
	Scan(dest ...any) error
}

func scanRow(s scanner) (domcons.Consultant, error) {
	var (
		c            domcons.Consultant
		responseTime sql.NullInt64
		approvedAt   sql.NullTime
	)
	err := s.Scan(
		&c.ID, &c.CompanyName,
		&c.ContactPerson, &c.Email, &c.Phone,
		&c.Website, &c.City, &c.Postcode,
		&c.Description, &c.YearsInBusiness, &c.TeamSize,
		&c.PricingLevel, &responseTime, &c.FreeConsultation,
		&c.MinProjectSize, &c.TypicalProjectDuration,
		&c.Verified, &c.Featured, &approvedAt, &c.ProfileViews, &c.CreatedAt,
		&c.Rating.Average, &c.Rating.Count,
	)
	if err != nil {
		return domcons.Consultant{}, err
	}
	if responseTime.Valid {
		h := int(responseTime.Int64)
		c.ResponseTimeHours = &h
	}
	if approvedAt.Valid {
		t := approvedAt.Time.UTC()
		c.ApprovedAt = &t
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return c, nil
}

func scanAll(rows *sql.Rows) ([]domcons.Consultant, error) {
	defer rows.Close()

	var out []domcons.Consultant
	for rows.Next() {
		c, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
