package health

import (
	"context"

	"github.com/findbrexitconsultants/directory/internal/version"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the cache is down; search still works against PostgreSQL.
	Degraded Status = "degraded"
	// Unhealthy indicates the record store is down.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names reported in Report.Checks.
const (
	ComponentPostgres = "postgres"
	ComponentCache    = "cache"
)

// Report aggregates health check results.
type Report struct {
	Status  Status
	Checks  map[string]CheckResult
	Version version.Info
}

// Service coordinates health checks.
type Service struct {
	postgres Pinger
	cache    Pinger
}

// New creates a Service. cache can be nil.
func New(postgres, cache Pinger) *Service {
	return &Service{postgres: postgres, cache: cache}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]CheckResult{
		ComponentPostgres: probe(ctx, s.postgres),
	}
	if s.cache != nil {
		checks[ComponentCache] = probe(ctx, s.cache)
	}

	status := Healthy
	switch {
	case checks[ComponentPostgres] == CheckError:
		status = Unhealthy
	case checks[ComponentCache] == CheckError:
		status = Degraded
	}

	return Report{Status: status, Checks: checks, Version: version.Get()}
}

func probe(ctx context.Context, p Pinger) CheckResult {
	if err := p.Ping(ctx); err != nil {
		return CheckError
	}
	return CheckOK
}
