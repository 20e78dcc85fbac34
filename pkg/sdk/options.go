package directory

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	httpClient    *http.Client
	apiKey        string
	serverTimeout time.Duration
	snapshotTTL   time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithAPIKey sets the bearer key sent to /internal routes.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = key
	})
}

// WithServerTimeout bounds the server attempt of Search before the local fallback runs.
// Default: 3s. Zero disables the bound.
func WithServerTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.serverTimeout = d
	})
}

// WithSnapshotTTL keeps the approved list used by the local fallback in memory for d.
// Default: 0, fetched on every fallback.
func WithSnapshotTTL(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.snapshotTTL = d
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
