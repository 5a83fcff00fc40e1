package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/tagdex/internal/domain/fallback"
)

// Engine Prometheus metrics.
var (
	SearchFallbackLevelTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tagdex",
			Name:      "search_fallback_level_total",
			Help:      "Progressive searches by the degradation level they were accepted at",
		},
		[]string{"scope", "level"}, // scope: "listing" / "carousel"
	)

	BranchFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tagdex",
			Name:      "branch_failures_total",
			Help:      "Optional aggregation branches degraded to empty output",
		},
		[]string{"branch"},
	)

	EnrichmentCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tagdex",
			Name:      "enrichment_cache_total",
			Help:      "Enrichment cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	IntersectionFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tagdex",
			Name:      "intersection_fallback_total",
			Help:      "Strict intersections answered by counting associations",
		},
	)
)

var engineMetricsRegistered bool

// RegisterEngineMetrics registers Prometheus engine metrics. Must be called once from main.
func RegisterEngineMetrics() {
	if engineMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchFallbackLevelTotal)
	prometheus.MustRegister(BranchFailuresTotal)
	prometheus.MustRegister(EnrichmentCacheTotal)
	prometheus.MustRegister(IntersectionFallbackTotal)
	engineMetricsRegistered = true
}

// Engine records engine events into the package collectors.
// The zero value is ready to use.
type Engine struct{}

// FallbackLevel counts a progressive search accepted at level (or no_results).
func (Engine) FallbackLevel(scope string, level fallback.Achieved) {
	label := level.Name()
	if level.Found() {
		label = strconv.Itoa(int(level)) + "_" + label
	}
	SearchFallbackLevelTotal.WithLabelValues(scope, label).Inc()
}

// IntersectionFallback counts one strict intersection served by the counting path.
func (Engine) IntersectionFallback() {
	IntersectionFallbackTotal.Inc()
}

// BranchFailed counts one optional branch degraded to empty output.
func (Engine) BranchFailed(branch string) {
	BranchFailuresTotal.WithLabelValues(branch).Inc()
}

// CacheResult counts one enrichment cache lookup.
func (Engine) CacheResult(hit bool) {
	if hit {
		EnrichmentCacheTotal.WithLabelValues("hit").Inc()
		return
	}
	EnrichmentCacheTotal.WithLabelValues("miss").Inc()
}
