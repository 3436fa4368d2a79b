package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/elipan/partyplan/internal/models"
	"github.com/elipan/partyplan/internal/storage"
)

// CreateGuest persists a new guest to the database.
func (s *SQLiteStore) CreateGuest(ctx context.Context, guest *models.Guest) error {
	// Generate identity if not set
	if guest.ID == "" {
		guest.ID = uuid.New().String()
	}
	if guest.Status == "" {
		guest.Status = models.StatusPending
	}
	now := time.Now().Unix()
	if guest.CreatedAt == 0 {
		guest.CreatedAt = now
	}
	guest.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO guests (id, name, status, adults, children, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		guest.ID, guest.Name, string(guest.Status), guest.Adults, guest.Children,
		guest.CreatedAt, guest.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert guest: %w", err)
	}

	return nil
}

// ListGuests retrieves all guests, newest first.
func (s *SQLiteStore) ListGuests(ctx context.Context) ([]models.Guest, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, status, adults, children, created_at, updated_at
		 FROM guests ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	defer rows.Close()

	var guests []models.Guest
	for rows.Next() {
		var g models.Guest
		if err := rows.Scan(&g.ID, &g.Name, &g.Status, &g.Adults, &g.Children,
			&g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan guest: %w", err)
		}
		guests = append(guests, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate guests: %w", err)
	}

	return guests, nil
}

// GetGuest retrieves a guest by ID.
func (s *SQLiteStore) GetGuest(ctx context.Context, id string) (*models.Guest, error) {
	g := &models.Guest{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, status, adults, children, created_at, updated_at
		 FROM guests WHERE id = ?`, id,
	).Scan(&g.ID, &g.Name, &g.Status, &g.Adults, &g.Children, &g.CreatedAt, &g.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("guest %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guest: %w", err)
	}
	return g, nil
}

// UpdateGuestStatus sets the RSVP status of one guest.
func (s *SQLiteStore) UpdateGuestStatus(ctx context.Context, id string, status models.GuestStatus) (*models.Guest, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE guests SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().Unix(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update guest status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("guest %s: %w", id, storage.ErrNotFound)
	}

	return s.GetGuest(ctx, id)
}

// DeleteGuest removes a guest by ID.
func (s *SQLiteStore) DeleteGuest(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM guests WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete guest: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("guest %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// ReplaceGuests atomically swaps the entire guest collection for the
// given candidates. Fresh IDs are assigned; the source format carries
// no identifier column.
func (s *SQLiteStore) ReplaceGuests(ctx context.Context, candidates []models.GuestCandidate) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM guests`); err != nil {
		return 0, fmt.Errorf("failed to clear guests: %w", err)
	}

	now := time.Now().Unix()
	for _, c := range candidates {
		status := c.Status
		if status == "" {
			status = models.StatusPending
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO guests (id, name, status, adults, children, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), c.Name, string(status), c.Adults, c.Children, now, now,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert imported guest: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(candidates), nil
}
