package consultant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/findbrexitconsultants/directory/internal/db"
	"github.com/findbrexitconsultants/directory/internal/domain"
	domcons "github.com/findbrexitconsultants/directory/internal/domain/consultant"
	"github.com/findbrexitconsultants/directory/internal/domain/search/spec"
	"github.com/findbrexitconsultants/directory/internal/domain/taxonomy"
)

// querier is the consumer interface over *sql.DB (ISP).
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Repo reads consultants, their taxonomy links and reference data from PostgreSQL.
type Repo struct {
	db querier
}

// New creates a consultant repository.
func New(q querier) *Repo {
	return &Repo{db: q}
}

// Candidates returns approved consultants matching the relational predicates of s.
// It is the pushdown source of the server resolver.
func (r *Repo) Candidates(ctx context.Context, s spec.Spec) ([]domcons.Consultant, error) {
	query, args := pushdown(s)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr(db.OpSelect, err)
	}
	cs, err := scanAll(rows)
	if err != nil {
		return nil, storeErr(db.OpSelect, err)
	}
	return cs, nil
}

// ListApproved returns every approved consultant in the fixed base order.
func (r *Repo) ListApproved(ctx context.Context) ([]domcons.Consultant, error) {
	query := "SELECT " + columns + "\n" + from + "\nWHERE " + approvedOnly + "\nORDER BY " + baseOrder
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeErr(db.OpSelect, err)
	}
	cs, err := scanAll(rows)
	if err != nil {
		return nil, storeErr(db.OpSelect, err)
	}
	return cs, nil
}

// Get returns one approved consultant. Pending and unknown ids are both ErrNotFound.
func (r *Repo) Get(ctx context.Context, id string) (domcons.Consultant, error) {
	query := "SELECT " + columns + "\n" + from + "\nWHERE " + approvedOnly + " AND c.id = $1"
	c, err := scanRow(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domcons.Consultant{}, fmt.Errorf("consultant %s: %w", id, domain.ErrNotFound)
		}
		return domcons.Consultant{}, storeErr(db.OpSelect, err)
	}
	return c, nil
}

// AddViews adds n to the profile view counter. Unknown ids are ignored.
func (r *Repo) AddViews(ctx context.Context, id string, n int64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE consultants SET profile_views = profile_views + $2 WHERE id = $1", id, n)
	if err != nil {
		return storeErr(db.OpUpdate, err)
	}
	return nil
}

// ConsultantIDsByServices returns ids linked to any of the service slugs.
func (r *Repo) ConsultantIDsByServices(ctx context.Context, slugs []string) ([]string, error) {
	return r.idsBySlug(ctx, `SELECT DISTINCT cs.consultant_id
FROM consultant_services cs
JOIN services s ON s.id = cs.service_id
WHERE s.slug = ANY($1)`, slugs)
}

// ConsultantIDsByIndustries returns ids linked to any of the industry slugs.
func (r *Repo) ConsultantIDsByIndustries(ctx context.Context, slugs []string) ([]string, error) {
	return r.idsBySlug(ctx, `SELECT DISTINCT ci.consultant_id
FROM consultant_industries ci
JOIN industries i ON i.id = ci.industry_id
WHERE i.slug = ANY($1)`, slugs)
}

func (r *Repo) idsBySlug(ctx context.Context, query string, slugs []string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, pq.Array(slugs))
	if err != nil {
		return nil, storeErr(db.OpSelect, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, storeErr(db.OpSelect, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(db.OpSelect, err)
	}
	return ids, nil
}

// Catalog returns both reference taxonomies ordered by name.
func (r *Repo) Catalog(ctx context.Context) (taxonomy.Catalog, error) {
	services, err := r.terms(ctx, "SELECT name, slug FROM services ORDER BY name")
	if err != nil {
		return taxonomy.Catalog{}, fmt.Errorf("services: %w", err)
	}
	industries, err := r.terms(ctx, "SELECT name, slug FROM industries ORDER BY name")
	if err != nil {
		return taxonomy.Catalog{}, fmt.Errorf("industries: %w", err)
	}
	return taxonomy.Catalog{Services: services, Industries: industries}, nil
}

func (r *Repo) terms(ctx context.Context, query string) ([]taxonomy.Term, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeErr(db.OpSelect, err)
	}
	defer rows.Close()

	terms := []taxonomy.Term{}
	for rows.Next() {
		var t taxonomy.Term
		if err := rows.Scan(&t.Name, &t.Slug); err != nil {
			return nil, storeErr(db.OpSelect, err)
		}
		terms = append(terms, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(db.OpSelect, err)
	}
	return terms, nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, &db.Error{Op: op, Err: err})
}
