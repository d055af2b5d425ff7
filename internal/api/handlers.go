package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/glossaryweb/glossary/internal/core"
	"github.com/glossaryweb/glossary/internal/db"
	"github.com/glossaryweb/glossary/internal/glossary"
)

// ItemsPath is the collection route of the glossary API.
const ItemsPath = "/api/glossaryitems"

// maxBodySize caps JSON request bodies.
const maxBodySize = 1 << 20

// Handler contains all HTTP handlers.
type Handler struct {
	Service *core.Service
	Log     logrus.FieldLogger
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListItems handles GET /api/glossaryitems.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.List(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// GetItem handles GET /api/glossaryitems/{id}.
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseItemID(w, r)
	if !ok {
		return
	}

	entry, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, entry)
}

// CreateItem handles POST /api/glossaryitems.
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var in glossary.Entry
	if !decodeEntry(w, r, &in) {
		return
	}

	entry, err := h.Service.Create(r.Context(), in)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", ItemLocation(entry.ID))
	respondJSON(w, http.StatusCreated, entry)
}

// ReplaceItem handles PUT /api/glossaryitems/{id}.
func (h *Handler) ReplaceItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseItemID(w, r)
	if !ok {
		return
	}

	var in glossary.Entry
	if !decodeEntry(w, r, &in) {
		return
	}

	if err := h.Service.Replace(r.Context(), id, in); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteItem handles DELETE /api/glossaryitems/{id}.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseItemID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ItemLocation returns the URL path of a single glossary item.
func ItemLocation(id int64) string {
	return fmt.Sprintf("%s/%d", ItemsPath, id)
}

// respondServiceError maps service errors to status codes.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		respondError(w, http.StatusNotFound, "Glossary item not found")
	case errors.Is(err, core.ErrBadRequest):
		respondError(w, http.StatusBadRequest, "Path id does not match body id")
	default:
		if h.Log != nil {
			h.Log.WithFields(logrus.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
			}).WithError(err).Error("glossary operation failed")
		}
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// parseItemID extracts and validates the "id" path parameter.
// Returns the parsed ID and true on success, or writes an error response and returns false.
func parseItemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return 0, false
	}
	return id, true
}

// decodeEntry reads a JSON entry from the request body.
// Returns false after writing a 400 response if the body is not a valid entry.
func decodeEntry(w http.ResponseWriter, r *http.Request, in *glossary.Entry) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(in); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid JSON body: %v", err))
		return false
	}
	return true
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// respondError sends an error JSON response with the given status code and message.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}
