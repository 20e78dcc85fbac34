package page

import "github.com/findbrexitconsultants/directory/internal/domain/consultant"

// Pagination describes where a page sits in the full result set.
type Pagination struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// Page is one slice of a sorted result set.
type Page struct {
	Consultants []consultant.Consultant
	Pagination  Pagination
}

// Of slices the 1-indexed page out of the fully filtered, sorted set.
// Pages past the end are empty; Total always counts the whole set.
func Of(cs []consultant.Consultant, pageNum, limit int) Page {
	if pageNum < 1 {
		pageNum = 1
	}
	if limit < 1 {
		limit = 1
	}
	total := len(cs)

	items := []consultant.Consultant{}
	offset := (pageNum - 1) * limit
	if offset < total {
		end := min(offset+limit, total)
		items = append(items, cs[offset:end]...)
	}

	return Page{
		Consultants: items,
		Pagination: Pagination{
			Page:       pageNum,
			Limit:      limit,
			Total:      total,
			TotalPages: TotalPages(total, limit),
		},
	}
}

// TotalPages returns ceil(total/limit).
func TotalPages(total, limit int) int {
	if limit < 1 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
