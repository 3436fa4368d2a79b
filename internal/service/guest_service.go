// Package service orchestrates validation, statistics, and the
// import/export pipeline between the HTTP layer and the Store.
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/elipan/partyplan/internal/calculator"
	"github.com/elipan/partyplan/internal/csvio"
	"github.com/elipan/partyplan/internal/models"
	"github.com/elipan/partyplan/internal/storage"
	"github.com/elipan/partyplan/internal/validation"
)

// GuestService implements the guest-list operations.
type GuestService struct {
	store storage.Store
}

// NewGuestService creates a GuestService with the given storage backend.
func NewGuestService(store storage.Store) *GuestService {
	return &GuestService{store: store}
}

// List returns all guests.
func (s *GuestService) List(ctx context.Context) ([]models.Guest, error) {
	return s.store.ListGuests(ctx)
}

// Add validates a candidate and persists it as a new pending guest.
// The interactive path never supplies a status; it is forced here.
func (s *GuestService) Add(ctx context.Context, c models.GuestCandidate) (*models.Guest, error) {
	if errs := validation.ValidateGuest(c, false); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	guest := &models.Guest{
		Name:     strings.TrimSpace(c.Name),
		Status:   models.StatusPending,
		Adults:   c.Adults,
		Children: c.Children,
	}
	if err := s.store.CreateGuest(ctx, guest); err != nil {
		slog.Error("CreateGuest failed", "error", err)
		return nil, err
	}

	slog.Info("Guest added", "guest_id", guest.ID, "adults", guest.Adults, "children", guest.Children)
	return guest, nil
}

// UpdateStatus changes one guest's RSVP state.
func (s *GuestService) UpdateStatus(ctx context.Context, id string, status models.GuestStatus) (*models.Guest, error) {
	if !models.ValidGuestStatus(status) {
		return nil, &ValidationError{Fields: []validation.FieldError{
			{Field: "status", Message: fmt.Sprintf("unknown status %q", string(status))},
		}}
	}

	guest, err := s.store.UpdateGuestStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	slog.Info("Guest status updated", "guest_id", id, "status", string(status))
	return guest, nil
}

// Remove deletes one guest.
func (s *GuestService) Remove(ctx context.Context, id string) error {
	if err := s.store.DeleteGuest(ctx, id); err != nil {
		return err
	}
	slog.Info("Guest removed", "guest_id", id)
	return nil
}

// Stats derives the attendance figures from the current collection.
func (s *GuestService) Stats(ctx context.Context) (calculator.GuestStatsResult, error) {
	guests, err := s.store.ListGuests(ctx)
	if err != nil {
		return calculator.GuestStatsResult{}, err
	}
	return calculator.GuestStats(guests), nil
}

// ExportCSV writes the current guest collection as CSV. Exporting an
// empty collection is an error; no output is produced.
func (s *GuestService) ExportCSV(ctx context.Context, w io.Writer) error {
	guests, err := s.store.ListGuests(ctx)
	if err != nil {
		return err
	}
	return csvio.ExportGuests(w, guests)
}

// ImportState labels where an import attempt ended.
type ImportState string

const (
	// ImportAwaitingConfirmation means the file validated cleanly and
	// the caller must confirm before the destructive replace runs.
	ImportAwaitingConfirmation ImportState = "awaiting_confirmation"

	// ImportCommitted means the existing collection was replaced.
	ImportCommitted ImportState = "committed"
)

// ImportResult is the outcome of a non-rejected import attempt.
type ImportResult struct {
	State ImportState
	// Count is the number of guests parsed (awaiting confirmation) or
	// stored (committed).
	Count int
	// Guests holds the parsed candidates for preview when awaiting
	// confirmation.
	Guests []models.GuestCandidate
}

// ImportCSV runs the import pipeline over a CSV document.
//
// Header mismatches surface as *csvio.HeaderError, row failures as a
// *ValidationError carrying every offending row, and a file with no
// data rows as ErrNothingToImport; in all three cases the stored
// collection is untouched. A clean parse with confirm=false stops at
// AwaitingConfirmation and returns the candidates for preview; only
// confirm=true commits the full replace.
func (s *GuestService) ImportCSV(ctx context.Context, r io.Reader, confirm bool) (*ImportResult, error) {
	candidates, rowErrs, err := csvio.ImportGuests(r)
	if err != nil {
		slog.Warn("Guest import rejected", "error", err)
		return nil, err
	}
	if len(rowErrs) > 0 {
		// All-or-nothing: per-row granularity exists only for precise
		// messages, never for partial acceptance.
		slog.Warn("Guest import rejected", "bad_rows", len(rowErrs))
		return nil, &ValidationError{Rows: rowErrs}
	}
	if len(candidates) == 0 {
		return nil, ErrNothingToImport
	}

	if !confirm {
		return &ImportResult{
			State:  ImportAwaitingConfirmation,
			Count:  len(candidates),
			Guests: candidates,
		}, nil
	}

	count, err := s.store.ReplaceGuests(ctx, candidates)
	if err != nil {
		slog.Error("ReplaceGuests failed", "error", err)
		return nil, err
	}
	slog.Info("Guest list replaced from CSV", "count", count)
	return &ImportResult{State: ImportCommitted, Count: count}, nil
}

// ImportReplace performs the JSON bulk replace: every candidate is
// validated (row-addressed, all-or-nothing) and the whole collection
// is swapped in one transaction.
func (s *GuestService) ImportReplace(ctx context.Context, candidates []models.GuestCandidate) (int, error) {
	if len(candidates) == 0 {
		return 0, ErrNothingToImport
	}

	var rowErrs []validation.RowError
	for i, c := range candidates {
		if errs := validation.ValidateGuest(c, true); len(errs) > 0 {
			rowErrs = append(rowErrs, validation.RowError{Row: i + 1, Errs: errs})
		}
	}
	if len(rowErrs) > 0 {
		return 0, &ValidationError{Rows: rowErrs}
	}

	count, err := s.store.ReplaceGuests(ctx, candidates)
	if err != nil {
		slog.Error("ReplaceGuests failed", "error", err)
		return 0, err
	}
	slog.Info("Guest list replaced", "count", count)
	return count, nil
}
