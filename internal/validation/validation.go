// Package validation holds the pure acceptance rules for guest and
// expense candidates. The same rule set runs once per interactive
// add/edit and once per row during CSV import, so errors carry field
// names and, in batch use, a row index.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/elipan/partyplan/internal/models"
)

// FieldError is a single user-correctable problem with one field of a
// candidate record.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RowError addresses a batch row that failed validation. Row is
// 1-based and counts data rows, excluding the header.
type RowError struct {
	Row  int          `json:"row"`
	Errs []FieldError `json:"errors"`
}

func (e RowError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, fe := range e.Errs {
		msgs[i] = fe.Error()
	}
	return fmt.Sprintf("row %d: %s", e.Row, strings.Join(msgs, "; "))
}

// ValidateGuest checks a guest candidate against the invariants:
// non-empty name, non-negative headcounts, at least one attendee, and
// no unaccompanied children. checkStatus additionally requires the
// status to be one of the closed set; the interactive path passes
// false because it forces pending, the import and status-update paths
// pass true.
//
// A nil return means the candidate is acceptable. Never touches the
// store.
func ValidateGuest(c models.GuestCandidate, checkStatus bool) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	}
	if c.Adults < 0 {
		errs = append(errs, FieldError{Field: "adults", Message: "must be non-negative"})
	}
	if c.Children < 0 {
		errs = append(errs, FieldError{Field: "children", Message: "must be non-negative"})
	}
	if c.Adults >= 0 && c.Children >= 0 {
		if c.Adults == 0 && c.Children > 0 {
			errs = append(errs, FieldError{Field: "adults", Message: "at least one adult is required when children attend"})
		}
		if c.Adults+c.Children == 0 {
			errs = append(errs, FieldError{Field: "adults", Message: "at least one attendee is required"})
		}
	}
	if checkStatus && !models.ValidGuestStatus(c.Status) {
		errs = append(errs, FieldError{Field: "status", Message: fmt.Sprintf("unknown status %q", string(c.Status))})
	}

	return errs
}

// ValidateExpense checks an expense candidate: non-empty concept,
// positive amount, a real calendar date, and one of the two known
// payers. A nil return means the candidate is acceptable.
func ValidateExpense(c models.ExpenseCandidate) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(c.Concept) == "" {
		errs = append(errs, FieldError{Field: "concept", Message: "concept is required"})
	}
	if !(c.Amount > 0) {
		errs = append(errs, FieldError{Field: "amount", Message: "must be a positive number"})
	}
	if _, err := time.Parse("2006-01-02", c.PaymentDate); err != nil {
		errs = append(errs, FieldError{Field: "paymentDate", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if !models.ValidPayer(c.PaidBy) {
		errs = append(errs, FieldError{Field: "paidBy", Message: fmt.Sprintf("unknown payer %q", string(c.PaidBy))})
	}

	return errs
}
