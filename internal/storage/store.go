// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/elipan/partyplan/internal/models"
)

// ErrNotFound is returned when the target record does not exist, e.g.
// a status update racing a delete. Implementations wrap it so callers
// can test with errors.Is.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence interface for guests and expenses.
// This abstraction allows swapping backends (SQLite for normal
// operation, the in-memory store for degraded/local-only mode and
// tests) without changing the service layer.
type Store interface {
	// CreateGuest persists a new guest. The ID and timestamp fields
	// are populated by the store.
	CreateGuest(ctx context.Context, guest *models.Guest) error

	// ListGuests returns all guests, newest first.
	ListGuests(ctx context.Context) ([]models.Guest, error)

	// GetGuest retrieves a guest by ID.
	GetGuest(ctx context.Context, id string) (*models.Guest, error)

	// UpdateGuestStatus sets the RSVP status of one guest and returns
	// the updated record.
	UpdateGuestStatus(ctx context.Context, id string, status models.GuestStatus) (*models.Guest, error)

	// DeleteGuest removes a guest by ID.
	DeleteGuest(ctx context.Context, id string) error

	// ReplaceGuests atomically replaces the entire guest collection
	// with the given candidates, assigning fresh IDs. It returns the
	// number of guests stored. On error the previous collection is
	// left untouched.
	ReplaceGuests(ctx context.Context, candidates []models.GuestCandidate) (int, error)

	// CreateExpense persists a new expense. The ID and timestamp
	// fields are populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpenses returns all expenses, most recent payment first.
	ListExpenses(ctx context.Context) ([]models.Expense, error)

	// GetExpense retrieves an expense by ID.
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// UpdateExpense overwrites the mutable fields of an existing
	// expense (full edit) and refreshes UpdatedAt.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// SetExpenseReimbursed toggles the reimbursement flag and returns
	// the updated record.
	SetExpenseReimbursed(ctx context.Context, id string, reimbursed bool) (*models.Expense, error)

	// DeleteExpense removes an expense by ID.
	DeleteExpense(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
