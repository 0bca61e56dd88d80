// Package handler implements the HTTP layer of the crewmap viewer.
//
// # Handlers
//
// GraphHandler serves the records API: the /api/graph payload consumed by
// graph views, record detail JSON and dataset import/export.
//
// ViewHandler exposes the in-process graph view: its state, the
// vis-network payload for a toggle combination and node id resolution.
//
// PageHandler renders the HTML pages: the graph viewer, its ECharts
// variant and the alliance, set and member detail pages.
//
// AuthHandler implements the optional password login gate.
//
// # Response Format
//
// Success responses return JSON data with appropriate status codes.
// Error responses return JSON with {error, details} structure.
package handler
