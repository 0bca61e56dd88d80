package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"crewmap/internal/domain"
)

// maxRecordBytes bounds a single record body
const maxRecordBytes = 1 << 20

// searchParams reads ?search= and ?limit= from the query string
func searchParams(r *http.Request) (string, int, error) {
	query := r.URL.Query().Get("search")
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return "", 0, fmt.Errorf("limit must be a non-negative integer, got %q", raw)
		}
		limit = n
	}
	return query, limit, nil
}

// decodeRecord decodes a JSON body into v, rejecting unknown fields
func decodeRecord(w http.ResponseWriter, r *http.Request, v any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRecordBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// writeWriteError maps service errors from record writes to status codes
func writeWriteError(w http.ResponseWriter, kind string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, "Not found", err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrConflict):
		writeError(w, "Conflict", err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrInvalidRecord), errors.Is(err, domain.ErrInvalidReference):
		writeError(w, "Invalid "+kind, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("Failed to write %s: %v", kind, err)
		writeError(w, "Failed to write "+kind, err.Error(), http.StatusInternalServerError)
	}
}

// ============================================================================
// Alliances
// ============================================================================

// ListAlliances returns alliances matching ?search=
func (h *GraphHandler) ListAlliances(w http.ResponseWriter, r *http.Request) {
	query, limit, err := searchParams(r)
	if err != nil {
		writeError(w, "Invalid query", err.Error(), http.StatusBadRequest)
		return
	}
	alliances, err := h.svc.SearchAlliances(r.Context(), query, limit)
	if err != nil {
		log.Printf("Failed to search alliances: %v", err)
		writeError(w, "Failed to search alliances", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, alliances, http.StatusOK)
}

// CreateAlliance stores the alliance in the body
func (h *GraphHandler) CreateAlliance(w http.ResponseWriter, r *http.Request) {
	var a domain.Alliance
	if err := decodeRecord(w, r, &a); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.svc.CreateAlliance(r.Context(), &a); err != nil {
		writeWriteError(w, "alliance", err)
		return
	}
	writeJSON(w, a, http.StatusCreated)
}

// UpdateAlliance applies the fields in the body to an existing alliance
func (h *GraphHandler) UpdateAlliance(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.UpdateAlliance(r.Context(), r.PathValue("id"), func(a *domain.Alliance) error {
		return decodeRecord(w, r, a)
	})
	if err != nil {
		writeWriteError(w, "alliance", err)
		return
	}
	writeJSON(w, a, http.StatusOK)
}

// DeleteAlliance removes an alliance
func (h *GraphHandler) DeleteAlliance(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAlliance(r.Context(), r.PathValue("id")); err != nil {
		writeWriteError(w, "alliance", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ============================================================================
// Sets
// ============================================================================

// ListSets returns sets matching ?search=
func (h *GraphHandler) ListSets(w http.ResponseWriter, r *http.Request) {
	query, limit, err := searchParams(r)
	if err != nil {
		writeError(w, "Invalid query", err.Error(), http.StatusBadRequest)
		return
	}
	sets, err := h.svc.SearchSets(r.Context(), query, limit)
	if err != nil {
		log.Printf("Failed to search sets: %v", err)
		writeError(w, "Failed to search sets", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, sets, http.StatusOK)
}

// CreateSet stores the set in the body
func (h *GraphHandler) CreateSet(w http.ResponseWriter, r *http.Request) {
	var set domain.Set
	if err := decodeRecord(w, r, &set); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.svc.CreateSet(r.Context(), &set); err != nil {
		writeWriteError(w, "set", err)
		return
	}
	writeJSON(w, set, http.StatusCreated)
}

// UpdateSet applies the fields in the body to an existing set
func (h *GraphHandler) UpdateSet(w http.ResponseWriter, r *http.Request) {
	set, err := h.svc.UpdateSet(r.Context(), r.PathValue("id"), func(s *domain.Set) error {
		return decodeRecord(w, r, s)
	})
	if err != nil {
		writeWriteError(w, "set", err)
		return
	}
	writeJSON(w, set, http.StatusOK)
}

// DeleteSet removes a set
func (h *GraphHandler) DeleteSet(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSet(r.Context(), r.PathValue("id")); err != nil {
		writeWriteError(w, "set", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ============================================================================
// Members
// ============================================================================

// ListMembers returns members matching ?search=
func (h *GraphHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	query, limit, err := searchParams(r)
	if err != nil {
		writeError(w, "Invalid query", err.Error(), http.StatusBadRequest)
		return
	}
	members, err := h.svc.SearchMembers(r.Context(), query, limit)
	if err != nil {
		log.Printf("Failed to search members: %v", err)
		writeError(w, "Failed to search members", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, members, http.StatusOK)
}

// CreateMember stores the member in the body
func (h *GraphHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var m domain.Member
	if err := decodeRecord(w, r, &m); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.svc.CreateMember(r.Context(), &m); err != nil {
		writeWriteError(w, "member", err)
		return
	}
	writeJSON(w, m, http.StatusCreated)
}

// UpdateMember applies the fields in the body to an existing member
func (h *GraphHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.UpdateMember(r.Context(), r.PathValue("id"), func(m *domain.Member) error {
		return decodeRecord(w, r, m)
	})
	if err != nil {
		writeWriteError(w, "member", err)
		return
	}
	writeJSON(w, m, http.StatusOK)
}

// DeleteMember removes a member
func (h *GraphHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteMember(r.Context(), r.PathValue("id")); err != nil {
		writeWriteError(w, "member", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Counts returns the number of stored records of each kind
func (h *GraphHandler) Counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.CountRecords(r.Context())
	if err != nil {
		log.Printf("Failed to count records: %v", err)
		writeError(w, "Failed to count records", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, counts, http.StatusOK)
}
