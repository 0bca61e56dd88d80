package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"crewmap/internal/codec"
	"crewmap/internal/domain"
	"crewmap/internal/metrics"
	"crewmap/internal/service"
)

// maxImportBytes bounds dataset uploads
const maxImportBytes = 32 << 20

// Error response structure
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// GraphHandler handles graph and record API requests
type GraphHandler struct {
	svc     *service.GraphService
	metrics *metrics.Registry
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(svc *service.GraphService) *GraphHandler {
	return &GraphHandler{svc: svc}
}

// SetMetrics sets the registry import results are recorded in
func (h *GraphHandler) SetMetrics(reg *metrics.Registry) {
	h.metrics = reg
}

// GetGraph returns the complete graph
func (h *GraphHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	graph, err := h.svc.GetGraph(r.Context())
	if err != nil {
		log.Printf("Failed to get graph: %v", err)
		writeError(w, "Failed to get graph", err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, graph, http.StatusOK)
}

// GetAlliance returns an alliance with its sets
func (h *GraphHandler) GetAlliance(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.GetAlliance(r.Context(), r.PathValue("id"))
	if err != nil {
		writeLookupError(w, "alliance", err)
		return
	}
	writeJSON(w, detail, http.StatusOK)
}

// GetSet returns a set with its related records
func (h *GraphHandler) GetSet(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.GetSet(r.Context(), r.PathValue("id"))
	if err != nil {
		writeLookupError(w, "set", err)
		return
	}
	writeJSON(w, detail, http.StatusOK)
}

// GetMember returns a member with its set and alliance
func (h *GraphHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.GetMember(r.Context(), r.PathValue("id"))
	if err != nil {
		writeLookupError(w, "member", err)
		return
	}
	writeJSON(w, detail, http.StatusOK)
}

// Import imports a dataset from the request body
func (h *GraphHandler) Import(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "yaml"
	}
	strategy := r.URL.Query().Get("strategy")
	if strategy == "" {
		strategy = service.StrategyMerge
	}

	body := http.MaxBytesReader(w, r.Body, maxImportBytes)
	result, err := h.svc.ImportReader(r.Context(), body, format, strategy)
	if h.metrics != nil {
		h.metrics.RecordImport(strategy, err)
	}
	if err != nil {
		log.Printf("Failed to import dataset: %v", err)
		writeError(w, "Failed to import dataset", err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, result, http.StatusOK)
}

// Export writes the full dataset
func (h *GraphHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "yaml"
	}

	c, err := codec.ForFormat(format)
	if err != nil {
		writeError(w, "Unsupported format", err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", codec.ContentType(c))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=crewmap.%s", c.Format()))

	if err := h.svc.Export(r.Context(), w, format); err != nil {
		log.Printf("Failed to export dataset: %v", err)
		// Can't write error response as we already set headers
		return
	}
}

func writeLookupError(w http.ResponseWriter, kind string, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, "Not found", err.Error(), http.StatusNotFound)
		return
	}
	log.Printf("Failed to get %s: %v", kind, err)
	writeError(w, "Failed to get "+kind, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON: %v", err)
	}
}

func writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}
