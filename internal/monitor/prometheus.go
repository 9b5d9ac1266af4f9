package monitor

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequests counts served REST requests
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "market_http_requests_total",
			Help: "Total number of REST requests served.",
		},
		[]string{"route", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "market_http_request_duration_seconds",
			Help:    "Time taken to serve a REST request.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
		[]string{"route"},
	)

	// EnrichedItems counts joined records per page by outcome (joined, skipped)
	EnrichedItems = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "market_enriched_items_total",
			Help: "Total number of items passed through page enrichment.",
		},
		[]string{"result"},
	)
	EnrichPageDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "market_enrich_page_duration_seconds",
			Help:    "Time taken to enrich one page of records.",
			Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
		},
	)
	StaleResults = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "market_stale_results_total",
			Help: "Total number of enrichment results discarded because a newer request superseded them.",
		},
	)

	// Sessions
	SessionLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "market_session_loads_total",
			Help: "Total number of read model loads by source (cache, snapshot, fresh, partial).",
		},
		[]string{"source"},
	)
	FavoriteToggles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "market_favorite_toggles_total",
			Help: "Total number of favorite toggles by outcome.",
		},
		[]string{"op", "result"},
	)
	ExpiredSnapshots = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "market_expired_session_snapshots_total",
			Help: "Total number of persisted session snapshots removed by the sweeper.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequests,
		HTTPRequestDuration,

		EnrichedItems,
		EnrichPageDuration,
		StaleResults,

		SessionLoads,
		FavoriteToggles,
		ExpiredSnapshots,
	)
}

// Handler exposes the registered metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
