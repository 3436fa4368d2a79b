package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/elipan/partyplan/internal/models"
	"github.com/elipan/partyplan/internal/storage"
)

func TestMemoryStoreCRUD(t *testing.T) {
	store, err := New("")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx := context.Background()

	guest := &models.Guest{Name: "Los García", Adults: 2, Children: 1}
	if err := store.CreateGuest(ctx, guest); err != nil {
		t.Fatalf("CreateGuest failed: %v", err)
	}
	if guest.ID == "" || guest.Status != models.StatusPending {
		t.Errorf("guest not initialized: %+v", guest)
	}

	updated, err := store.UpdateGuestStatus(ctx, guest.ID, models.StatusConfirmed)
	if err != nil {
		t.Fatalf("UpdateGuestStatus failed: %v", err)
	}
	if updated.Status != models.StatusConfirmed {
		t.Errorf("Status = %q, want confirmed", updated.Status)
	}

	if err := store.DeleteGuest(ctx, guest.ID); err != nil {
		t.Fatalf("DeleteGuest failed: %v", err)
	}
	if _, err := store.GetGuest(ctx, guest.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	expense := &models.Expense{Concept: "Bebidas", Amount: 12, PaymentDate: "2025-06-14", PaidBy: models.PayerPan}
	if err := store.CreateExpense(ctx, expense); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	got, err := store.SetExpenseReimbursed(ctx, expense.ID, true)
	if err != nil {
		t.Fatalf("SetExpenseReimbursed failed: %v", err)
	}
	if !got.IsReimbursed {
		t.Error("expected IsReimbursed true")
	}
}

func TestMemoryStoreSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	ctx := context.Background()

	store, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := store.CreateGuest(ctx, &models.Guest{Name: "Marta", Adults: 1}); err != nil {
		t.Fatalf("CreateGuest failed: %v", err)
	}
	if err := store.CreateExpense(ctx, &models.Expense{
		Concept: "Tarta", Amount: 20, PaymentDate: "2025-06-10", PaidBy: models.PayerEli,
	}); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	// A fresh store over the same file sees the same records.
	reopened, err := New(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	guests, err := reopened.ListGuests(ctx)
	if err != nil {
		t.Fatalf("ListGuests failed: %v", err)
	}
	if len(guests) != 1 || guests[0].Name != "Marta" {
		t.Errorf("guests = %+v, want Marta", guests)
	}
	expenses, err := reopened.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(expenses) != 1 || expenses[0].Concept != "Tarta" {
		t.Errorf("expenses = %+v, want Tarta", expenses)
	}
}

func TestMemoryStoreMigratesOldSnapshotShapes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	// Pre-headcount snapshot: one legacy attendees entry, one with no
	// counts at all.
	old := `{
	  "guests": [
	    {"id": "g1", "name": "Vieja", "status": "confirmed", "attendees": 3},
	    {"id": "g2", "name": "Antigua", "status": "pending"}
	  ],
	  "expenses": []
	}`
	if err := os.WriteFile(path, []byte(old), 0644); err != nil {
		t.Fatalf("failed to seed snapshot: %v", err)
	}

	store, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	guests, err := store.ListGuests(context.Background())
	if err != nil {
		t.Fatalf("ListGuests failed: %v", err)
	}
	byID := map[string]models.Guest{}
	for _, g := range guests {
		byID[g.ID] = g
	}

	if g := byID["g1"]; g.Adults != 3 || g.Children != 0 {
		t.Errorf("legacy attendees entry migrated to %+v, want 3 adults 0 children", g)
	}
	if g := byID["g2"]; g.Adults != 1 || g.Children != 0 {
		t.Errorf("countless entry migrated to %+v, want 1 adult 0 children", g)
	}
}

func TestMemoryStoreReplaceGuests(t *testing.T) {
	store, err := New("")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx := context.Background()

	if err := store.CreateGuest(ctx, &models.Guest{Name: "Vieja", Adults: 1}); err != nil {
		t.Fatalf("CreateGuest failed: %v", err)
	}

	count, err := store.ReplaceGuests(ctx, []models.GuestCandidate{
		{Name: "Nueva", Status: models.StatusConfirmed, Adults: 2, Children: 1},
	})
	if err != nil {
		t.Fatalf("ReplaceGuests failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	guests, _ := store.ListGuests(ctx)
	if len(guests) != 1 || guests[0].Name != "Nueva" {
		t.Errorf("guests = %+v, want only Nueva", guests)
	}
}
