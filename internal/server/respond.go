package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/elipan/partyplan/internal/csvio"
	"github.com/elipan/partyplan/internal/service"
	"github.com/elipan/partyplan/internal/storage"
)

// writeJSON writes v with the given status. Every API response carries
// the success flag, so v is always a map or struct that includes it.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps service errors onto the API error envelope:
// validation problems are 400 with one message per offending field or
// row, vanished records are 404, everything else is a 500 with a
// generic message.
func writeError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "validation failed",
			"details": verr.Messages(),
		})
		return
	}

	var herr *csvio.HeaderError
	if errors.As(err, &herr) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   herr.Error(),
		})
		return
	}

	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success": false,
			"error":   "not found",
		})
	case errors.Is(err, service.ErrNothingToImport), errors.Is(err, csvio.ErrNoGuests):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
	default:
		slog.Error("Request handler failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "internal server error",
		})
	}
}

// decodeJSON decodes the request body into dst, rejecting unknown
// syntax with a client error.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "invalid request body",
		})
		return false
	}
	return true
}
