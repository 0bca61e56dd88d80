package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"crewmap/internal/domain"
	"crewmap/internal/graphview"
	"crewmap/internal/metrics"
)

// ViewState is the /api/view response
type ViewState struct {
	State   graphview.State `json:"state"`
	Nodes   int             `json:"nodes"`
	Edges   int             `json:"edges"`
	Toggles domain.Toggles  `json:"toggles"`
}

// NetworkResponse is the vis-network payload plus the detail path of every
// node that has one. Nodes missing from Links are not navigable.
type NetworkResponse struct {
	*graphview.Network
	Links map[string]string `json:"links"`
}

func newNetworkResponse(net *graphview.Network) NetworkResponse {
	return NetworkResponse{Network: net, Links: graphview.Links(net)}
}

// ViewHandler exposes a graph view over HTTP
type ViewHandler struct {
	view     *graphview.View
	linkBase string
	metrics  *metrics.Registry
}

// NewViewHandler creates a view handler. Detail links resolve against
// linkBase, or this server when it is empty.
func NewViewHandler(view *graphview.View, linkBase string) *ViewHandler {
	return &ViewHandler{view: view, linkBase: linkBase}
}

// SetMetrics sets the registry navigations are counted in
func (h *ViewHandler) SetMetrics(reg *metrics.Registry) {
	h.metrics = reg
}

// GetState returns the view state and the size of its data
func (h *ViewHandler) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.state(), http.StatusOK)
}

func (h *ViewHandler) state() ViewState {
	data := h.view.Data()
	return ViewState{
		State:   h.view.State(),
		Nodes:   len(data.Nodes),
		Edges:   len(data.Edges),
		Toggles: h.view.Toggles(),
	}
}

// GetNetwork returns the vis-network payload. Without query parameters it
// is the view's current network; members and alliances build a snapshot
// for those toggles instead.
func (h *ViewHandler) GetNetwork(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("members") && !q.Has("alliances") {
		net := h.view.Network()
		if net == nil {
			writeError(w, "Graph not loaded", "the graph view is still unloaded", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, newNetworkResponse(net), http.StatusOK)
		return
	}

	toggles, err := parseToggles(r, h.view.Toggles())
	if err != nil {
		writeError(w, "Invalid toggles", err.Error(), http.StatusBadRequest)
		return
	}

	net, ok := h.view.Snapshot(toggles)
	if !ok {
		writeError(w, "Graph not loaded", "the graph view is still unloaded", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, newNetworkResponse(net), http.StatusOK)
}

// SetToggles replaces the view's toggles, re-rendering when loaded
func (h *ViewHandler) SetToggles(w http.ResponseWriter, r *http.Request) {
	toggles := h.view.Toggles()
	if err := json.NewDecoder(r.Body).Decode(&toggles); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	h.view.SetToggles(toggles)
	writeJSON(w, h.state(), http.StatusOK)
}

// ResolveNode redirects a node id to its detail page
func (h *ViewHandler) ResolveNode(w http.ResponseWriter, r *http.Request) {
	path, ok := graphview.Resolve(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordNavigation()
	}
	http.Redirect(w, r, h.linkBase+path, http.StatusFound)
}

// parseToggles reads members and alliances query flags over base
func parseToggles(r *http.Request, base domain.Toggles) (domain.Toggles, error) {
	q := r.URL.Query()
	toggles := base

	if v := q.Get("members"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return toggles, fmt.Errorf("members: %w", err)
		}
		toggles.ShowMembers = b
	}
	if v := q.Get("alliances"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return toggles, fmt.Errorf("alliances: %w", err)
		}
		toggles.ShowAlliances = b
	}

	return toggles, nil
}
