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

// CreateExpense persists a new expense to the database.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if expense.CreatedAt == 0 {
		expense.CreatedAt = now
	}
	expense.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, concept, amount, payment_date, is_reimbursed, paid_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.Concept, expense.Amount, expense.PaymentDate,
		boolToInt(expense.IsReimbursed), string(expense.PaidBy),
		expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	return nil
}

// ListExpenses retrieves all expenses, most recent payment first.
func (s *SQLiteStore) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, concept, amount, payment_date, is_reimbursed, paid_by, created_at, updated_at
		 FROM expenses ORDER BY payment_date DESC, created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		e, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

// GetExpense retrieves an expense by ID.
func (s *SQLiteStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, concept, amount, payment_date, is_reimbursed, paid_by, created_at, updated_at
		 FROM expenses WHERE id = ?`, id,
	)
	e, err := scanExpense(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return e, nil
}

// UpdateExpense overwrites the mutable fields of an existing expense.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	expense.UpdatedAt = time.Now().Unix()
	res, err := s.db.ExecContext(ctx,
		`UPDATE expenses
		 SET concept = ?, amount = ?, payment_date = ?, is_reimbursed = ?, paid_by = ?, updated_at = ?
		 WHERE id = ?`,
		expense.Concept, expense.Amount, expense.PaymentDate,
		boolToInt(expense.IsReimbursed), string(expense.PaidBy), expense.UpdatedAt, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", expense.ID, storage.ErrNotFound)
	}
	return nil
}

// SetExpenseReimbursed toggles the reimbursement flag.
func (s *SQLiteStore) SetExpenseReimbursed(ctx context.Context, id string, reimbursed bool) (*models.Expense, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET is_reimbursed = ?, updated_at = ? WHERE id = ?`,
		boolToInt(reimbursed), time.Now().Unix(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
	}

	return s.GetExpense(ctx, id)
}

// DeleteExpense removes an expense by ID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// scanExpense maps one expenses row onto a model, converting the
// is_reimbursed integer column to a bool.
func scanExpense(scan func(dest ...any) error) (*models.Expense, error) {
	e := &models.Expense{}
	var reimbursed int
	if err := scan(&e.ID, &e.Concept, &e.Amount, &e.PaymentDate, &reimbursed,
		&e.PaidBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.IsReimbursed = reimbursed != 0
	return e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
