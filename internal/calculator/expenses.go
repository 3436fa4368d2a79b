package calculator

import "github.com/elipan/partyplan/internal/models"

// ExpenseStatsResult summarizes the two-party ledger and the transfer
// needed to settle it to an even split.
type ExpenseStatsResult struct {
	// Total sums every expense regardless of reimbursement.
	Total float64 `json:"total"`

	// ByPayer sums amounts per known payer. Both payers are always
	// present as keys, even at zero. Expenses attributed to an unknown
	// payer count toward Total but to neither key.
	ByPayer map[models.Payer]float64 `json:"byPayer"`

	// ReimbursedTotal sums expenses already settled back to the payer;
	// PendingTotal is the remainder of Total.
	ReimbursedTotal float64 `json:"reimbursedTotal"`
	PendingTotal    float64 `json:"pendingTotal"`

	// Difference is the absolute gap between the two per-payer sums.
	Difference float64 `json:"difference"`

	// PayerOwing is the side that has contributed strictly less and
	// owes the settling transfer. Empty when the two sides are exactly
	// equal.
	PayerOwing models.Payer `json:"payerOwing"`

	// AmountOwed is half of Difference: the transfer PayerOwing makes
	// so both end up having contributed equally.
	AmountOwed float64 `json:"amountOwed"`
}

// ExpenseStats reduces the expense collection to totals, per-payer
// sums, the reimbursed/pending split, and the even-split settlement.
func ExpenseStats(expenses []models.Expense) ExpenseStatsResult {
	r := ExpenseStatsResult{
		ByPayer: map[models.Payer]float64{
			models.PayerEli: 0,
			models.PayerPan: 0,
		},
	}

	for _, e := range expenses {
		r.Total += e.Amount
		if models.ValidPayer(e.PaidBy) {
			r.ByPayer[e.PaidBy] += e.Amount
		}
		if e.IsReimbursed {
			r.ReimbursedTotal += e.Amount
		}
	}
	r.PendingTotal = r.Total - r.ReimbursedTotal

	eli, pan := r.ByPayer[models.PayerEli], r.ByPayer[models.PayerPan]
	switch {
	case eli > pan:
		r.Difference = eli - pan
		r.PayerOwing = models.PayerPan
	case pan > eli:
		r.Difference = pan - eli
		r.PayerOwing = models.PayerEli
	}
	// On an exact tie Difference stays zero and PayerOwing stays empty.
	r.AmountOwed = r.Difference / 2

	return r
}
