package consultant

import (
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/findbrexitconsultants/directory/internal/domain/search/sortkey"
	"github.com/findbrexitconsultants/directory/internal/domain/search/spec"
)

// approvedOnly is part of every consultant query.
const approvedOnly = "c.approved_at IS NOT NULL"

// baseOrder is the fixed default ordering of the full approved list.
const baseOrder = "c.featured DESC, c.profile_views DESC, c.created_at DESC, c.id ASC"

// builder accumulates WHERE conditions and numbered positional arguments.
type builder struct {
	conds []string
	args  []any
}

// arg appends v and returns its placeholder.
func (b *builder) arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *builder) where(cond string) {
	b.conds = append(b.conds, cond)
}

func (b *builder) clause() string {
	return "WHERE " + strings.Join(b.conds, " AND ")
}

// pushdown translates the relational part of s into SQL.
// Service and industry slugs are not part of it; they are resolved through the junctions.
func pushdown(s spec.Spec) (string, []any) {
	b := &builder{}
	b.where(approvedOnly)

	if cities := s.Cities(); len(cities) > 0 {
		b.where("c.city = ANY(" + b.arg(pq.Array(cities)) + ")")
	}
	if q := s.Query(); q != "" {
		p := b.arg("%" + escapeLike(q) + "%")
		b.where("(c.company_name ILIKE " + p +
			" OR COALESCE(c.description, '') ILIKE " + p +
			" OR COALESCE(c.contact_person, '') ILIKE " + p +
			" OR COALESCE(c.city, '') ILIKE " + p + ")")
	}
	if s.VerifiedOnly() {
		b.where("c.verified")
	}
	if s.FreeConsultationOnly() {
		b.where("c.free_consultation")
	}
	if level, ok := s.MaxPricingLevel(); ok {
		b.where("c.pricing_level BETWEEN 1 AND " + b.arg(level))
	}

	query := "SELECT " + columns + "\n" + from + "\n" + b.clause() + "\nORDER BY " + orderBy(s.SortKey())
	return query, b.args
}

// orderBy mirrors the in-process comparator so the store hands back candidates
// already close to their final order.
func orderBy(k sortkey.Key) string {
	switch k {
	case sortkey.Featured:
		return "c.featured DESC, c.created_at DESC, c.id ASC"
	case sortkey.Rating:
		return "COALESCE(r.avg_rating, 0) DESC, COALESCE(r.review_count, 0) DESC, c.created_at DESC, c.id ASC"
	case sortkey.ResponseTime:
		return "c.response_time_hours ASC NULLS LAST, c.created_at DESC, c.id ASC"
	case sortkey.Newest:
		return "c.created_at DESC, c.id ASC"
	default:
		return baseOrder
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
