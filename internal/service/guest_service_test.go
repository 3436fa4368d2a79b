package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/elipan/partyplan/internal/csvio"
	"github.com/elipan/partyplan/internal/models"
	"github.com/elipan/partyplan/internal/storage"
	"github.com/elipan/partyplan/internal/storage/memory"
)

func newGuestService(t *testing.T) *GuestService {
	t.Helper()
	store, err := memory.New("")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return NewGuestService(store)
}

func TestGuestServiceAdd(t *testing.T) {
	svc := newGuestService(t)
	ctx := context.Background()

	t.Run("valid candidate is stored as pending", func(t *testing.T) {
		guest, err := svc.Add(ctx, models.GuestCandidate{Name: "  Los García  ", Adults: 2, Children: 1})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if guest.Status != models.StatusPending {
			t.Errorf("Status = %q, want pending", guest.Status)
		}
		if guest.Name != "Los García" {
			t.Errorf("Name = %q, want trimmed", guest.Name)
		}
		if guest.ID == "" {
			t.Error("expected assigned ID")
		}
	})

	t.Run("status supplied by client is ignored", func(t *testing.T) {
		guest, err := svc.Add(ctx, models.GuestCandidate{Name: "Colado", Status: models.StatusConfirmed, Adults: 1})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if guest.Status != models.StatusPending {
			t.Errorf("Status = %q, want pending regardless of input", guest.Status)
		}
	})

	t.Run("invalid candidate is a ValidationError", func(t *testing.T) {
		_, err := svc.Add(ctx, models.GuestCandidate{Name: "X", Adults: 0, Children: 2})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
		if len(verr.Fields) == 0 {
			t.Error("expected field errors")
		}
	})
}

func TestGuestServiceUpdateStatus(t *testing.T) {
	svc := newGuestService(t)
	ctx := context.Background()

	guest, err := svc.Add(ctx, models.GuestCandidate{Name: "Marta", Adults: 1})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	updated, err := svc.UpdateStatus(ctx, guest.ID, models.StatusConfirmed)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != models.StatusConfirmed {
		t.Errorf("Status = %q, want confirmed", updated.Status)
	}

	if _, err := svc.UpdateStatus(ctx, guest.ID, "maybe"); err == nil {
		t.Error("expected error for invalid status")
	}
	if _, err := svc.UpdateStatus(ctx, "missing", models.StatusDeclined); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGuestServiceImportCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("clean file awaits confirmation without mutating", func(t *testing.T) {
		svc := newGuestService(t)
		if _, err := svc.Add(ctx, models.GuestCandidate{Name: "Existente", Adults: 1}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}

		in := "Nombre,Estado,Adultos,Niños\nNueva,confirmed,2,1\n"
		res, err := svc.ImportCSV(ctx, strings.NewReader(in), false)
		if err != nil {
			t.Fatalf("ImportCSV failed: %v", err)
		}
		if res.State != ImportAwaitingConfirmation {
			t.Errorf("State = %q, want awaiting_confirmation", res.State)
		}
		if res.Count != 1 || len(res.Guests) != 1 {
			t.Errorf("preview = %+v, want one candidate", res)
		}

		guests, _ := svc.List(ctx)
		if len(guests) != 1 || guests[0].Name != "Existente" {
			t.Errorf("collection mutated before confirmation: %+v", guests)
		}
	})

	t.Run("confirmed import replaces the collection", func(t *testing.T) {
		svc := newGuestService(t)
		if _, err := svc.Add(ctx, models.GuestCandidate{Name: "Existente", Adults: 1}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}

		in := "Nombre,Estado,Adultos,Niños\nNueva,confirmed,2,1\nOtra,pending,1,0\n"
		res, err := svc.ImportCSV(ctx, strings.NewReader(in), true)
		if err != nil {
			t.Fatalf("ImportCSV failed: %v", err)
		}
		if res.State != ImportCommitted || res.Count != 2 {
			t.Errorf("result = %+v, want committed count 2", res)
		}

		guests, _ := svc.List(ctx)
		if len(guests) != 2 {
			t.Fatalf("got %d guests, want 2", len(guests))
		}
		for _, g := range guests {
			if g.Name == "Existente" {
				t.Error("previous collection survived the replace")
			}
		}
	})

	t.Run("header mismatch leaves collection untouched", func(t *testing.T) {
		svc := newGuestService(t)
		if _, err := svc.Add(ctx, models.GuestCandidate{Name: "Existente", Adults: 1}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}

		in := "Nombre,Estado,Adultos\nNueva,confirmed,2\n"
		_, err := svc.ImportCSV(ctx, strings.NewReader(in), true)
		var herr *csvio.HeaderError
		if !errors.As(err, &herr) {
			t.Fatalf("err = %v, want HeaderError", err)
		}

		guests, _ := svc.List(ctx)
		if len(guests) != 1 {
			t.Errorf("collection mutated on rejected import: %+v", guests)
		}
	})

	t.Run("any bad row blocks the whole batch", func(t *testing.T) {
		svc := newGuestService(t)
		in := "Nombre,Estado,Adultos,Niños\n" +
			"Buena,confirmed,2,0\n" +
			"Mala,pending,0,2\n"
		_, err := svc.ImportCSV(ctx, strings.NewReader(in), true)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
		if len(verr.Rows) != 1 || verr.Rows[0].Row != 2 {
			t.Errorf("Rows = %+v, want one error on row 2", verr.Rows)
		}

		guests, _ := svc.List(ctx)
		if len(guests) != 0 {
			t.Errorf("partial import happened: %+v", guests)
		}
	})

	t.Run("only invalid rows reports validation, not nothing-to-import", func(t *testing.T) {
		svc := newGuestService(t)
		in := "Nombre,Estado,Adultos,Niños\nMala,pending,0,2\n"
		_, err := svc.ImportCSV(ctx, strings.NewReader(in), true)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
	})

	t.Run("header-only file is nothing to import", func(t *testing.T) {
		svc := newGuestService(t)
		_, err := svc.ImportCSV(ctx, strings.NewReader("Nombre,Estado,Adultos,Niños\n"), true)
		if !errors.Is(err, ErrNothingToImport) {
			t.Errorf("err = %v, want ErrNothingToImport", err)
		}
	})
}

func TestGuestServiceExportImportRoundTrip(t *testing.T) {
	svc := newGuestService(t)
	ctx := context.Background()

	originals := []models.GuestCandidate{
		{Name: "Los García", Adults: 2, Children: 1},
		{Name: `Ana, "Anita"`, Adults: 1},
	}
	for _, c := range originals {
		if _, err := svc.Add(ctx, c); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	all, _ := svc.List(ctx)
	for _, g := range all {
		if g.Name == "Los García" {
			if _, err := svc.UpdateStatus(ctx, g.ID, models.StatusConfirmed); err != nil {
				t.Fatalf("status update failed: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := svc.ExportCSV(ctx, &buf); err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}

	before, _ := svc.List(ctx)
	res, err := svc.ImportCSV(ctx, &buf, true)
	if err != nil {
		t.Fatalf("ImportCSV failed: %v", err)
	}
	if res.Count != len(before) {
		t.Fatalf("re-imported %d guests, want %d", res.Count, len(before))
	}

	after, _ := svc.List(ctx)
	type key struct {
		Name     string
		Status   models.GuestStatus
		Adults   int
		Children int
	}
	seen := map[key]int{}
	for _, g := range before {
		seen[key{g.Name, g.Status, g.Adults, g.Children}]++
	}
	for _, g := range after {
		seen[key{g.Name, g.Status, g.Adults, g.Children}]--
	}
	for k, n := range seen {
		if n != 0 {
			t.Errorf("round trip changed fields: %+v off by %d", k, n)
		}
	}
	// Identifiers are reassigned, never reused.
	for _, b := range before {
		for _, a := range after {
			if a.ID == b.ID {
				t.Errorf("ID %s survived the replace", a.ID)
			}
		}
	}
}

func TestGuestServiceExportEmpty(t *testing.T) {
	svc := newGuestService(t)
	var buf bytes.Buffer
	if err := svc.ExportCSV(context.Background(), &buf); !errors.Is(err, csvio.ErrNoGuests) {
		t.Errorf("err = %v, want ErrNoGuests", err)
	}
}

func TestGuestServiceStats(t *testing.T) {
	svc := newGuestService(t)
	ctx := context.Background()

	a, _ := svc.Add(ctx, models.GuestCandidate{Name: "A", Adults: 2, Children: 1})
	if _, err := svc.Add(ctx, models.GuestCandidate{Name: "B", Adults: 1}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, a.ID, models.StatusConfirmed); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.ConfirmedAdults != 2 || stats.ConfirmedChildren != 1 || stats.ConfirmedTotal != 3 {
		t.Errorf("confirmed stats = %+v", stats)
	}
	if stats.PendingCount != 1 {
		t.Errorf("PendingCount = %d, want 1", stats.PendingCount)
	}
}

func TestGuestServiceImportReplace(t *testing.T) {
	svc := newGuestService(t)
	ctx := context.Background()

	t.Run("empty payload", func(t *testing.T) {
		if _, err := svc.ImportReplace(ctx, nil); !errors.Is(err, ErrNothingToImport) {
			t.Errorf("err = %v, want ErrNothingToImport", err)
		}
	})

	t.Run("row-addressed validation", func(t *testing.T) {
		_, err := svc.ImportReplace(ctx, []models.GuestCandidate{
			{Name: "Buena", Status: models.StatusPending, Adults: 1},
			{Name: "", Status: models.StatusPending, Adults: 1},
		})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
		if len(verr.Rows) != 1 || verr.Rows[0].Row != 2 {
			t.Errorf("Rows = %+v, want error on row 2", verr.Rows)
		}
	})

	t.Run("valid payload replaces", func(t *testing.T) {
		count, err := svc.ImportReplace(ctx, []models.GuestCandidate{
			{Name: "Nueva", Status: models.StatusConfirmed, Adults: 2},
		})
		if err != nil {
			t.Fatalf("ImportReplace failed: %v", err)
		}
		if count != 1 {
			t.Errorf("count = %d, want 1", count)
		}
	})
}
