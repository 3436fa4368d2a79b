package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/elipan/partyplan/internal/calculator"
	"github.com/elipan/partyplan/internal/models"
	"github.com/elipan/partyplan/internal/storage"
	"github.com/elipan/partyplan/internal/validation"
)

// ExpenseService implements the shared-cost ledger operations.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates an ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// List returns all expenses.
func (s *ExpenseService) List(ctx context.Context) ([]models.Expense, error) {
	return s.store.ListExpenses(ctx)
}

// Get retrieves one expense by ID.
func (s *ExpenseService) Get(ctx context.Context, id string) (*models.Expense, error) {
	return s.store.GetExpense(ctx, id)
}

// Add validates a candidate and persists it as a new expense.
func (s *ExpenseService) Add(ctx context.Context, c models.ExpenseCandidate) (*models.Expense, error) {
	if errs := validation.ValidateExpense(c); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	expense := &models.Expense{
		Concept:      strings.TrimSpace(c.Concept),
		Amount:       c.Amount,
		PaymentDate:  c.PaymentDate,
		PaidBy:       c.PaidBy,
		IsReimbursed: c.IsReimbursed,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "error", err)
		return nil, err
	}

	slog.Info("Expense added", "expense_id", expense.ID, "amount", expense.Amount, "paid_by", string(expense.PaidBy))
	return expense, nil
}

// SetReimbursed toggles the reimbursement flag on one expense.
func (s *ExpenseService) SetReimbursed(ctx context.Context, id string, reimbursed bool) (*models.Expense, error) {
	expense, err := s.store.SetExpenseReimbursed(ctx, id, reimbursed)
	if err != nil {
		return nil, err
	}
	slog.Info("Expense reimbursement updated", "expense_id", id, "reimbursed", reimbursed)
	return expense, nil
}

// Edit validates and overwrites the mutable fields of an existing
// expense, returning the updated record.
func (s *ExpenseService) Edit(ctx context.Context, id string, c models.ExpenseCandidate) (*models.Expense, error) {
	if errs := validation.ValidateExpense(c); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	expense := &models.Expense{
		ID:           id,
		Concept:      strings.TrimSpace(c.Concept),
		Amount:       c.Amount,
		PaymentDate:  c.PaymentDate,
		PaidBy:       c.PaidBy,
		IsReimbursed: c.IsReimbursed,
	}
	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		return nil, err
	}

	slog.Info("Expense edited", "expense_id", id)
	return s.store.GetExpense(ctx, id)
}

// Remove deletes one expense.
func (s *ExpenseService) Remove(ctx context.Context, id string) error {
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return err
	}
	slog.Info("Expense removed", "expense_id", id)
	return nil
}

// Stats derives the ledger figures from the current collection.
func (s *ExpenseService) Stats(ctx context.Context) (calculator.ExpenseStatsResult, error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return calculator.ExpenseStatsResult{}, err
	}
	return calculator.ExpenseStats(expenses), nil
}
