package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/findbrexitconsultants/directory/internal/domain/search/strategy"
)

// Search resolution and cache metrics.
var (
	SearchResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "search",
			Name:      "resolutions_total",
			Help:      "Directory searches by final resolver state and the reason it was reached",
		},
		[]string{"state", "reason", "status"},
	)

	SearchResolveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "search",
			Name:      "resolve_duration_seconds",
			Help:      "Time to resolve a directory search, fallback included",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"state"},
	)

	SearchFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "search",
			Name:      "fallbacks_total",
			Help:      "Searches answered by the fallback resolver, by trigger",
		},
		[]string{"reason"},
	)

	SnapshotCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "snapshot_cache_total",
			Help:      "Approved snapshot cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	ViewEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "profile_view_events_total",
			Help:      "Profile views by lifecycle event",
		},
		[]string{"event"}, // recorded, dropped, flushed, requeued
	)
)

var domainMetricsRegistered bool

// RegisterDomainMetrics registers search, cache and view metrics. Must be called once from main.
func RegisterDomainMetrics() {
	if domainMetricsRegistered {
		return
	}
	prometheus.MustRegister(
		SearchResolutionsTotal,
		SearchResolveDuration,
		SearchFallbacksTotal,
		SnapshotCacheTotal,
		ViewEventsTotal,
	)
	domainMetricsRegistered = true
}

// SearchRecorder feeds coordinator outcomes into the search collectors.
type SearchRecorder struct{}

// ObserveResolution records one finished directory search.
func (SearchRecorder) ObserveResolution(
	state strategy.State, reason strategy.Reason, err error, elapsed time.Duration,
) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	label := string(reason)
	if label == "" {
		label = "none"
	}

	SearchResolutionsTotal.WithLabelValues(string(state), label, status).Inc()
	SearchResolveDuration.WithLabelValues(string(state)).Observe(elapsed.Seconds())
	if state == strategy.Fallback && err == nil {
		SearchFallbacksTotal.WithLabelValues(label).Inc()
	}
}

// ViewsRecorder feeds view lifecycle events into ViewEventsTotal.
type ViewsRecorder struct{}

// ObserveViews adds n to the event's counter.
func (ViewsRecorder) ObserveViews(event string, n int64) {
	ViewEventsTotal.WithLabelValues(event).Add(float64(n))
}
