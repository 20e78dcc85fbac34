package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/findbrexitconsultants/directory/internal/domain/search/spec"
	"github.com/findbrexitconsultants/directory/internal/logger"
	healthuc "github.com/findbrexitconsultants/directory/internal/usecase/health"
)

// maxBodyBytes caps POST search bodies.
const maxBodyBytes = 64 << 10

// Deps are the use cases behind the HTTP API. Snapshot may be nil when the
// approved-list cache is disabled.
type Deps struct {
	Server    Searcher
	Directory Directory
	Catalog   Catalog
	Views     Views
	Snapshot  SnapshotInvalidator
	Health    HealthChecker
}

// Server is the HTTP API of the consultant directory.
type Server struct {
	deps    Deps
	limits  spec.Limits
	apiKeys []string
	logger  *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(deps Deps, limits spec.Limits, apiKeys []string, logger *zap.Logger) *Server {
	return &Server{deps: deps, limits: limits, apiKeys: apiKeys, logger: logger}
}

// Register mounts every route on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/consultants", func(r chi.Router) {
			r.Get("/", s.ListConsultants)
			r.Get("/search", s.SearchQuery)
			r.Post("/search", s.SearchBody)
			r.Get("/approved", s.ListApproved)
			r.Get("/{id}", s.GetConsultant)
			r.Post("/{id}/views", s.RecordView)
		})
		r.Get("/taxonomies", s.ListTaxonomies)
		r.Get("/locations", s.ListLocations)
	})

	r.Route("/internal", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(s.apiKeys))
		r.Post("/snapshot/invalidate", s.InvalidateSnapshot)
		r.Post("/views/flush", s.FlushViews)
	})
}

// ListConsultants resolves a search through the server path with fallback.
func (s *Server) ListConsultants(w http.ResponseWriter, r *http.Request) {
	sp := spec.Parse(paramsFromQuery(r.URL.Query()), s.limits)
	out, err := s.deps.Directory.Resolve(r.Context(), sp)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, outcomeToResponse(out))
}

// SearchQuery runs the server resolver only, from query parameters.
func (s *Server) SearchQuery(w http.ResponseWriter, r *http.Request) {
	s.search(w, r, spec.Parse(paramsFromQuery(r.URL.Query()), s.limits))
}

// SearchBody runs the server resolver only, from a JSON body.
func (s *Server) SearchBody(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body)
	if err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid JSON body")
		return
	}
	s.search(w, r, spec.Parse(paramsFromBody(body), s.limits))
}

func (s *Server) search(w http.ResponseWriter, r *http.Request, sp spec.Spec) {
	p, err := s.deps.Server.Resolve(r.Context(), sp)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageToResponse(p))
}

// ListApproved returns every approved consultant in base order.
func (s *Server) ListApproved(w http.ResponseWriter, r *http.Request) {
	cs, err := s.deps.Catalog.Approved(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, approvedResponse{Consultants: consultantsToDTO(cs), Total: len(cs)})
}

// GetConsultant returns one approved profile.
func (s *Server) GetConsultant(w http.ResponseWriter, r *http.Request) {
	c, err := s.deps.Catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, consultantToDTO(c))
}

// RecordView queues one profile view.
func (s *Server) RecordView(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Views.Record(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// ListTaxonomies returns the service and industry reference data.
func (s *Server) ListTaxonomies(w http.ResponseWriter, r *http.Request) {
	c, err := s.deps.Catalog.Taxonomies(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, taxonomiesResponse{
		Services:   termsToDTO(c.Services),
		Industries: termsToDTO(c.Industries),
	})
}

// ListLocations returns the location slug table.
func (s *Server) ListLocations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, locationsResponse{Locations: locationsToDTO(s.deps.Catalog.Locations())})
}

// InvalidateSnapshot drops the cached approved list.
func (s *Server) InvalidateSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.deps.Snapshot != nil {
		if err := s.deps.Snapshot.Invalidate(r.Context()); err != nil {
			s.handleDomainError(w, r, err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// FlushViews moves buffered view counts into the record store now.
// A partial flush still answers 200; complete is false and the rest stays queued.
func (s *Server) FlushViews(w http.ResponseWriter, r *http.Request) {
	n, err := s.deps.Views.Flush(r.Context())
	if err != nil {
		s.log(r).Warn("partial views flush", zap.Int64("flushed", n), zap.Error(err))
	}
	writeJSON(w, http.StatusOK, flushResponse{Flushed: n, Complete: err == nil})
}

// HealthCheck reports component health. Only a down record store answers 503.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.deps.Health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthResponse{
		Status:  string(report.Status),
		Checks:  checks,
		Version: report.Version.Version,
		Commit:  report.Version.Commit,
	})
}

// log returns the request logger placed by WideEvent.
func (s *Server) log(r *http.Request) *zap.Logger {
	return logger.FromContext(r.Context())
}
