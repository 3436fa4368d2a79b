package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/elipan/partyplan/internal/models"
)

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    expenses,
	})
}

func (s *Server) addExpense(w http.ResponseWriter, r *http.Request) {
	var candidate models.ExpenseCandidate
	if !decodeJSON(w, r, &candidate) {
		return
	}

	expense, err := s.expenses.Add(r.Context(), candidate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    expense,
	})
}

// expensePatch distinguishes the reimbursement toggle from a full
// edit: fields absent from the body stay untouched.
type expensePatch struct {
	Concept      *string       `json:"concept"`
	Amount       *float64      `json:"amount"`
	PaymentDate  *string       `json:"paymentDate"`
	PaidBy       *models.Payer `json:"paidBy"`
	IsReimbursed *bool         `json:"isReimbursed"`
}

func (p expensePatch) toggleOnly() bool {
	return p.IsReimbursed != nil &&
		p.Concept == nil && p.Amount == nil && p.PaymentDate == nil && p.PaidBy == nil
}

func (s *Server) patchExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch expensePatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	if patch.toggleOnly() {
		expense, err := s.expenses.SetReimbursed(r.Context(), id, *patch.IsReimbursed)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    expense,
		})
		return
	}

	// Full edit: overlay the provided fields on the stored record and
	// revalidate the result as a whole.
	existing, err := s.expenses.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	candidate := models.ExpenseCandidate{
		Concept:      existing.Concept,
		Amount:       existing.Amount,
		PaymentDate:  existing.PaymentDate,
		PaidBy:       existing.PaidBy,
		IsReimbursed: existing.IsReimbursed,
	}
	if patch.Concept != nil {
		candidate.Concept = *patch.Concept
	}
	if patch.Amount != nil {
		candidate.Amount = *patch.Amount
	}
	if patch.PaymentDate != nil {
		candidate.PaymentDate = *patch.PaymentDate
	}
	if patch.PaidBy != nil {
		candidate.PaidBy = *patch.PaidBy
	}
	if patch.IsReimbursed != nil {
		candidate.IsReimbursed = *patch.IsReimbursed
	}

	expense, err := s.expenses.Edit(r.Context(), id, candidate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    expense,
	})
}

func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) expenseStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.expenses.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats":   stats,
	})
}
