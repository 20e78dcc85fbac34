package directory

import (
	"fmt"

	"github.com/findbrexitconsultants/directory/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound            = domain.ErrNotFound
	ErrInvalidID           = domain.ErrInvalidID
	ErrUpstreamUnavailable = domain.ErrUpstreamUnavailable
	ErrSearchUnavailable   = domain.ErrSearchUnavailable
)

// APIError is a non-2xx answer from the service.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("directory: %d %s: %s", e.Status, e.Code, e.Message)
}

// Unwrap maps the response code onto the matching sentinel.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "not_found":
		return domain.ErrNotFound
	case "invalid_id":
		return domain.ErrInvalidID
	case "search_unavailable":
		return domain.ErrSearchUnavailable
	case "upstream_unavailable":
		return domain.ErrUpstreamUnavailable
	}
	return nil
}
