package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initHTTPMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "crewmap_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crewmap_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestsInFlight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "crewmap_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)
}

func (r *Registry) initViewMetrics() {
	r.ViewLoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "crewmap_view_loads_total",
			Help: "Graph load attempts by result",
		},
		[]string{"result"},
	)

	r.ViewLoaded = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "crewmap_view_loaded",
			Help: "Whether the graph view holds loaded data (1) or not (0)",
		},
	)

	r.ViewNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "crewmap_view_nodes",
			Help: "Number of nodes held by the graph view",
		},
	)

	r.ViewEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "crewmap_view_edges",
			Help: "Number of edges held by the graph view",
		},
	)

	r.ViewRendersTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "crewmap_view_renders_total",
			Help: "Total number of network renders",
		},
	)

	r.ViewVisibleNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "crewmap_view_visible_nodes",
			Help: "Number of nodes in the last rendered network",
		},
	)

	r.ViewVisibleEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "crewmap_view_visible_edges",
			Help: "Number of edges in the last rendered network",
		},
	)

	r.ViewNavigations = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "crewmap_view_navigations_total",
			Help: "Node clicks resolved to a detail page",
		},
	)

	r.SSEClientsCurrent = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "crewmap_sse_clients",
			Help: "Current number of connected event stream clients",
		},
	)
}

func (r *Registry) initDatasetMetrics() {
	r.ImportsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "crewmap_dataset_imports_total",
			Help: "Dataset imports by strategy and result",
		},
		[]string{"strategy", "result"},
	)
}
