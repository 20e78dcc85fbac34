package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/findbrexitconsultants/directory/internal/domain"
)

// Error codes returned in errorResponse.Code.
const (
	codeBadRequest          = "bad_request"
	codeUnauthorized        = "unauthorized"
	codeNotFound            = "not_found"
	codeInvalidID           = "invalid_id"
	codeUpstreamUnavailable = "upstream_unavailable"
	codeSearchUnavailable   = "search_unavailable"
	codeInternal            = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// domainErrorHandlers maps sentinels to responses; first match wins.
// ErrSearchUnavailable comes before ErrUpstreamUnavailable since a Failed run wraps both.
var domainErrorHandlers = []errorHandler{
	sentinelHandler(domain.ErrInvalidID, http.StatusBadRequest, codeInvalidID),
	sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
	sentinelHandler(domain.ErrSearchUnavailable, http.StatusServiceUnavailable, codeSearchUnavailable),
	sentinelHandler(domain.ErrTaxonomyLookup, http.StatusServiceUnavailable, codeUpstreamUnavailable),
	sentinelHandler(domain.ErrUpstreamUnavailable, http.StatusServiceUnavailable, codeUpstreamUnavailable),
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidID,
		domain.ErrNotFound,
		domain.ErrSearchUnavailable,
		domain.ErrTaxonomyLookup,
		domain.ErrUpstreamUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.log(r)
	msg := safeDomainMessage(err)
	for _, h := range domainErrorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
}
