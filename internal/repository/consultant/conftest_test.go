package consultant

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var (
	created  = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	approved = created.Add(48 * time.Hour)
)

var rowColumns = []string{
	"id", "company_name",
	"contact_person", "email", "phone",
	"website", "city", "postcode",
	"description", "years_in_business", "team_size",
	"pricing_level", "response_time_hours", "free_consultation",
	"min_project_size", "typical_project_duration",
	"verified", "featured", "approved_at", "profile_views", "created_at",
	"avg_rating", "review_count",
}

func newRepo(t *testing.T) (*Repo, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, m, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := m.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		_ = sqlDB.Close()
	})
	return New(sqlDB), m
}

// consultantRows returns two approved listings: one complete, one with every optional column NULL.
func consultantRows() *sqlmock.Rows {
	return sqlmock.NewRows(rowColumns).
		AddRow(
			"11111111-1111-1111-1111-111111111111", "Border Ready Ltd",
			"Ann Smith", "ann@borderready.example", "0121 000 0000",
			"https://borderready.example", "Birmingham", "B1 1AA",
			"VAT/Tax Compliance for importers", int64(12), "11-50",
			int64(2), int64(4), true,
			"£5k", "3 months",
			true, false, approved, int64(40), created,
			4.5, int64(8),
		).
		AddRow(
			"22222222-2222-2222-2222-222222222222", "Customs Desk",
			"", "", "",
			"", "London", "",
			"", int64(0), "",
			int64(0), nil, false,
			"", "",
			false, true, approved, int64(0), created.Add(time.Hour),
			0.0, int64(0),
		)
}
