package server

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/elipan/partyplan/internal/models"
	"github.com/elipan/partyplan/internal/service"
)

func (s *Server) listGuests(w http.ResponseWriter, r *http.Request) {
	guests, err := s.guests.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if guests == nil {
		guests = []models.Guest{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"guests":  guests,
	})
}

func (s *Server) addGuest(w http.ResponseWriter, r *http.Request) {
	var candidate models.GuestCandidate
	if !decodeJSON(w, r, &candidate) {
		return
	}

	guest, err := s.guests.Add(r.Context(), candidate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"guest":   guest,
	})
}

func (s *Server) updateGuestStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status models.GuestStatus `json:"status"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	guest, err := s.guests.UpdateStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"guest":   guest,
	})
}

func (s *Server) deleteGuest(w http.ResponseWriter, r *http.Request) {
	if err := s.guests.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) guestStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.guests.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats":   stats,
	})
}

func (s *Server) importGuests(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Guests []models.GuestCandidate `json:"guests"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	count, err := s.guests.ImportReplace(r.Context(), body.Guests)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   count,
	})
}

func (s *Server) importGuestsCSV(w http.ResponseWriter, r *http.Request) {
	confirm := r.URL.Query().Get("confirm") == "true"

	result, err := s.guests.ImportCSV(r.Context(), r.Body, confirm)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := map[string]any{
		"success": true,
		"state":   string(result.State),
		"count":   result.Count,
	}
	if result.State == service.ImportAwaitingConfirmation {
		resp["guests"] = result.Guests
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) exportGuestsCSV(w http.ResponseWriter, r *http.Request) {
	// Buffer the document so an empty collection can still produce a
	// clean JSON error instead of a half-written file.
	var buf bytes.Buffer
	if err := s.guests.ExportCSV(r.Context(), &buf); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="invitados.csv"`)
	w.Write(buf.Bytes())
}
