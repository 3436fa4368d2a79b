// Package memory provides an in-process implementation of the
// storage.Store interface for degraded/local-only mode and tests.
// Records live in memory behind a mutex; when a snapshot path is
// configured they are also persisted as a JSON file after every
// mutation, so a restart does not lose the lists.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/elipan/partyplan/internal/models"
	"github.com/elipan/partyplan/internal/storage"
)

// Ensure MemoryStore implements storage.Store
var _ storage.Store = (*MemoryStore)(nil)

// MemoryStore implements storage.Store in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	guests   map[string]models.Guest
	expenses map[string]models.Expense
	path     string // snapshot file; empty disables persistence
}

// snapshot is the on-disk JSON shape.
type snapshot struct {
	Guests   []snapshotGuest  `json:"guests"`
	Expenses []models.Expense `json:"expenses"`
}

// snapshotGuest tolerates older snapshot shapes: entries written
// before headcounts existed carry an "attendees" field, or nothing.
type snapshotGuest struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Status    models.GuestStatus `json:"status"`
	Adults    *int               `json:"adults"`
	Children  *int               `json:"children"`
	Attendees *int               `json:"attendees"`
	CreatedAt int64              `json:"createdAt"`
	UpdatedAt int64              `json:"updatedAt"`
}

// New creates a MemoryStore. If path is non-empty, an existing
// snapshot is loaded from it and every mutation rewrites it.
func New(path string) (*MemoryStore, error) {
	s := &MemoryStore{
		guests:   make(map[string]models.Guest),
		expenses: make(map[string]models.Expense),
		path:     path,
	}
	if path != "" {
		if err := s.load(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *MemoryStore) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to parse snapshot: %w", err)
	}

	for _, sg := range snap.Guests {
		g := models.Guest{
			ID:        sg.ID,
			Name:      sg.Name,
			Status:    sg.Status,
			CreatedAt: sg.CreatedAt,
			UpdatedAt: sg.UpdatedAt,
		}
		// Migrate older shapes: fall back to the legacy attendees
		// count (all adults), then to a single adult.
		switch {
		case sg.Adults != nil:
			g.Adults = *sg.Adults
		case sg.Attendees != nil:
			g.Adults = *sg.Attendees
		default:
			g.Adults = 1
		}
		if sg.Children != nil {
			g.Children = *sg.Children
		}
		if g.ID == "" {
			g.ID = uuid.New().String()
		}
		s.guests[g.ID] = g
	}
	for _, e := range snap.Expenses {
		s.expenses[e.ID] = e
	}
	return nil
}

// persist writes the snapshot file. Callers hold the write lock.
func (s *MemoryStore) persist() error {
	if s.path == "" {
		return nil
	}

	snap := snapshot{Expenses: s.sortedExpenses()}
	for _, g := range s.sortedGuests() {
		snap.Guests = append(snap.Guests, snapshotGuest{
			ID:        g.ID,
			Name:      g.Name,
			Status:    g.Status,
			Adults:    &g.Adults,
			Children:  &g.Children,
			CreatedAt: g.CreatedAt,
			UpdatedAt: g.UpdatedAt,
		})
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// sortedGuests returns guests newest first. Callers hold a lock.
func (s *MemoryStore) sortedGuests() []models.Guest {
	guests := make([]models.Guest, 0, len(s.guests))
	for _, g := range s.guests {
		guests = append(guests, g)
	}
	sort.Slice(guests, func(i, j int) bool {
		if guests[i].CreatedAt != guests[j].CreatedAt {
			return guests[i].CreatedAt > guests[j].CreatedAt
		}
		return guests[i].ID < guests[j].ID
	})
	return guests
}

// sortedExpenses returns expenses most recent payment first. Callers
// hold a lock.
func (s *MemoryStore) sortedExpenses() []models.Expense {
	expenses := make([]models.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		expenses = append(expenses, e)
	}
	sort.Slice(expenses, func(i, j int) bool {
		if expenses[i].PaymentDate != expenses[j].PaymentDate {
			return expenses[i].PaymentDate > expenses[j].PaymentDate
		}
		return expenses[i].CreatedAt > expenses[j].CreatedAt
	})
	return expenses
}

// CreateGuest stores a new guest, assigning identity and timestamps.
func (s *MemoryStore) CreateGuest(_ context.Context, guest *models.Guest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

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

	s.guests[guest.ID] = *guest
	return s.persist()
}

// ListGuests returns all guests, newest first.
func (s *MemoryStore) ListGuests(_ context.Context) ([]models.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedGuests(), nil
}

// GetGuest retrieves a guest by ID.
func (s *MemoryStore) GetGuest(_ context.Context, id string) (*models.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.guests[id]
	if !ok {
		return nil, fmt.Errorf("guest %s: %w", id, storage.ErrNotFound)
	}
	return &g, nil
}

// UpdateGuestStatus sets the RSVP status of one guest.
func (s *MemoryStore) UpdateGuestStatus(_ context.Context, id string, status models.GuestStatus) (*models.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.guests[id]
	if !ok {
		return nil, fmt.Errorf("guest %s: %w", id, storage.ErrNotFound)
	}
	g.Status = status
	g.UpdatedAt = time.Now().Unix()
	s.guests[id] = g

	if err := s.persist(); err != nil {
		return nil, err
	}
	return &g, nil
}

// DeleteGuest removes a guest by ID.
func (s *MemoryStore) DeleteGuest(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.guests[id]; !ok {
		return fmt.Errorf("guest %s: %w", id, storage.ErrNotFound)
	}
	delete(s.guests, id)
	return s.persist()
}

// ReplaceGuests swaps the entire guest collection for the candidates.
func (s *MemoryStore) ReplaceGuests(_ context.Context, candidates []models.GuestCandidate) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().Unix()
	replacement := make(map[string]models.Guest, len(candidates))
	for _, c := range candidates {
		status := c.Status
		if status == "" {
			status = models.StatusPending
		}
		id := uuid.New().String()
		replacement[id] = models.Guest{
			ID:        id,
			Name:      c.Name,
			Status:    status,
			Adults:    c.Adults,
			Children:  c.Children,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	previous := s.guests
	s.guests = replacement
	if err := s.persist(); err != nil {
		s.guests = previous
		return 0, err
	}
	return len(candidates), nil
}

// CreateExpense stores a new expense, assigning identity and timestamps.
func (s *MemoryStore) CreateExpense(_ context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if expense.CreatedAt == 0 {
		expense.CreatedAt = now
	}
	expense.UpdatedAt = now

	s.expenses[expense.ID] = *expense
	return s.persist()
}

// ListExpenses returns all expenses, most recent payment first.
func (s *MemoryStore) ListExpenses(_ context.Context) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedExpenses(), nil
}

// GetExpense retrieves an expense by ID.
func (s *MemoryStore) GetExpense(_ context.Context, id string) (*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.expenses[id]
	if !ok {
		return nil, fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
	}
	return &e, nil
}

// UpdateExpense overwrites the mutable fields of an existing expense.
func (s *MemoryStore) UpdateExpense(_ context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.expenses[expense.ID]
	if !ok {
		return fmt.Errorf("expense %s: %w", expense.ID, storage.ErrNotFound)
	}
	expense.CreatedAt = existing.CreatedAt
	expense.UpdatedAt = time.Now().Unix()
	s.expenses[expense.ID] = *expense
	return s.persist()
}

// SetExpenseReimbursed toggles the reimbursement flag.
func (s *MemoryStore) SetExpenseReimbursed(_ context.Context, id string, reimbursed bool) (*models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.expenses[id]
	if !ok {
		return nil, fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
	}
	e.IsReimbursed = reimbursed
	e.UpdatedAt = time.Now().Unix()
	s.expenses[id] = e

	if err := s.persist(); err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteExpense removes an expense by ID.
func (s *MemoryStore) DeleteExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expenses[id]; !ok {
		return fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
	}
	delete(s.expenses, id)
	return s.persist()
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
