package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/findbrexitconsultants/directory/internal/domain"
	domcons "github.com/findbrexitconsultants/directory/internal/domain/consultant"
	"github.com/findbrexitconsultants/directory/internal/domain/search/location"
	"github.com/findbrexitconsultants/directory/internal/domain/taxonomy"
)

// Service serves the read-only directory data around search: profiles,
// the approved list, taxonomies and the location table.
type Service struct {
	profiles   Profiles
	taxonomies Taxonomies
	approved   ApprovedLister
}

// New creates a Service.
func New(profiles Profiles, taxonomies Taxonomies, approved ApprovedLister) *Service {
	return &Service{profiles: profiles, taxonomies: taxonomies, approved: approved}
}

// Get returns one approved consultant.
func (s *Service) Get(ctx context.Context, id string) (domcons.Consultant, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domcons.Consultant{}, fmt.Errorf("consultant id %q: %w", id, domain.ErrInvalidID)
	}
	c, err := s.profiles.Get(ctx, id)
	if err != nil {
		return domcons.Consultant{}, fmt.Errorf("get consultant: %w", err)
	}
	return c, nil
}

// Approved returns every approved consultant in base order.
func (s *Service) Approved(ctx context.Context) ([]domcons.Consultant, error) {
	cs, err := s.approved.ListApproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("list approved: %w", err)
	}
	return cs, nil
}

// Taxonomies returns the service and industry reference data.
func (s *Service) Taxonomies(ctx context.Context) (taxonomy.Catalog, error) {
	c, err := s.taxonomies.Catalog(ctx)
	if err != nil {
		return taxonomy.Catalog{}, fmt.Errorf("load taxonomies: %w", err)
	}
	return c, nil
}

// Locations returns the location slug table used by the location filter.
func (s *Service) Locations() []location.Location {
	return location.All()
}
