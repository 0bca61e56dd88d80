package metrics

import (
	"time"
)

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordImport records a dataset import
func (r *Registry) RecordImport(strategy string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	r.ImportsTotal.WithLabelValues(strategy, result).Inc()
}

// RecordNavigation counts a click that resolved to a detail page
func (r *Registry) RecordNavigation() {
	r.ViewNavigations.Inc()
}

// SetSSEClients sets the connected event stream client count
func (r *Registry) SetSSEClients(n int) {
	r.SSEClientsCurrent.Set(float64(n))
}

// Loaded records a successful graph load
func (r *Registry) Loaded(nodes, edges int) {
	r.ViewLoadsTotal.WithLabelValues("success").Inc()
	r.ViewLoaded.Set(1)
	r.ViewNodes.Set(float64(nodes))
	r.ViewEdges.Set(float64(edges))
}

// LoadFailed records a failed graph load
func (r *Registry) LoadFailed(err error) {
	r.ViewLoadsTotal.WithLabelValues("error").Inc()
}

// Rendered records a network render
func (r *Registry) Rendered(nodes, edges int) {
	r.ViewRendersTotal.Inc()
	r.ViewVisibleNodes.Set(float64(nodes))
	r.ViewVisibleEdges.Set(float64(edges))
}
