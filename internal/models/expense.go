package models

// Payer identifies which of the two household members paid an expense.
// The ledger is strictly two-party; any other value in stored data is
// treated as unattributed by the statistics.
type Payer string

const (
	PayerEli Payer = "Eli"
	PayerPan Payer = "Pan"
)

// Payers lists the two ledger parties in a fixed order.
var Payers = [2]Payer{PayerEli, PayerPan}

// ValidPayer reports whether p is one of the two ledger parties.
func ValidPayer(p Payer) bool {
	return p == PayerEli || p == PayerPan
}

// Expense is one shared-cost ledger entry.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Concept describes what the money was spent on. Never empty.
	Concept string `json:"concept"`

	// Amount is the expense amount. Always positive; currency-agnostic.
	Amount float64 `json:"amount"`

	// PaymentDate is the calendar date the expense was paid, as YYYY-MM-DD.
	PaymentDate string `json:"paymentDate"`

	// PaidBy is which of the two parties paid.
	PaidBy Payer `json:"paidBy"`

	// IsReimbursed marks the amount as settled back to the payer.
	// Mutable independently of the other fields.
	IsReimbursed bool `json:"isReimbursed"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is refreshed on every mutation.
	UpdatedAt int64 `json:"updatedAt"`
}

// ExpenseCandidate is an unvalidated expense as submitted by a form,
// before the store has assigned an identity.
type ExpenseCandidate struct {
	Concept      string  `json:"concept"`
	Amount       float64 `json:"amount"`
	PaymentDate  string  `json:"paymentDate"`
	PaidBy       Payer   `json:"paidBy"`
	IsReimbursed bool    `json:"isReimbursed"`
}
