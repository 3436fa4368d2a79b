package calculator

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/elipan/partyplan/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

func TestExpenseStats(t *testing.T) {
	tests := []struct {
		name     string
		expenses []models.Expense
		want     ExpenseStatsResult
	}{
		{
			name:     "empty ledger",
			expenses: nil,
			want: ExpenseStatsResult{
				ByPayer: map[models.Payer]float64{models.PayerEli: 0, models.PayerPan: 0},
			},
		},
		{
			name: "basic settle-up",
			expenses: []models.Expense{
				{Concept: "Comida", Amount: 100, PaidBy: models.PayerEli, IsReimbursed: true},
				{Concept: "Bebidas", Amount: 60, PaidBy: models.PayerPan},
			},
			want: ExpenseStatsResult{
				Total:           160,
				ByPayer:         map[models.Payer]float64{models.PayerEli: 100, models.PayerPan: 60},
				ReimbursedTotal: 100,
				PendingTotal:    60,
				Difference:      40,
				PayerOwing:      models.PayerPan,
				AmountOwed:      20,
			},
		},
		{
			name: "exact tie leaves nobody owing",
			expenses: []models.Expense{
				{Concept: "A", Amount: 50, PaidBy: models.PayerEli},
				{Concept: "B", Amount: 50, PaidBy: models.PayerPan},
			},
			want: ExpenseStatsResult{
				Total:        100,
				ByPayer:      map[models.Payer]float64{models.PayerEli: 50, models.PayerPan: 50},
				PendingTotal: 100,
			},
		},
		{
			name: "unknown payer counts in total but not per payer",
			expenses: []models.Expense{
				{Concept: "A", Amount: 30, PaidBy: models.PayerEli},
				{Concept: "B", Amount: 15, PaidBy: "Sam"},
			},
			want: ExpenseStatsResult{
				Total:        45,
				ByPayer:      map[models.Payer]float64{models.PayerEli: 30, models.PayerPan: 0},
				PendingTotal: 45,
				Difference:   30,
				PayerOwing:   models.PayerPan,
				AmountOwed:   15,
			},
		},
		{
			name: "pan overpaying means eli owes",
			expenses: []models.Expense{
				{Concept: "A", Amount: 20, PaidBy: models.PayerEli},
				{Concept: "B", Amount: 80, PaidBy: models.PayerPan, IsReimbursed: true},
			},
			want: ExpenseStatsResult{
				Total:           100,
				ByPayer:         map[models.Payer]float64{models.PayerEli: 20, models.PayerPan: 80},
				ReimbursedTotal: 80,
				PendingTotal:    20,
				Difference:      60,
				PayerOwing:      models.PayerEli,
				AmountOwed:      30,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpenseStats(tt.expenses)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExpenseStats() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExpenseStatsByPayerSumsToTotal(t *testing.T) {
	// Holds whenever every expense is attributed to a known payer.
	rng := rand.New(rand.NewSource(7))
	var expenses []models.Expense
	for i := 0; i < 50; i++ {
		p := models.PayerEli
		if rng.Intn(2) == 1 {
			p = models.PayerPan
		}
		expenses = append(expenses, models.Expense{
			Concept:      "x",
			Amount:       float64(rng.Intn(10000)) / 100,
			PaidBy:       p,
			IsReimbursed: rng.Intn(2) == 1,
		})
	}

	r := ExpenseStats(expenses)
	if sum := r.ByPayer[models.PayerEli] + r.ByPayer[models.PayerPan]; !almostEqual(sum, r.Total) {
		t.Errorf("byPayer sum = %v, total = %v", sum, r.Total)
	}
	if !almostEqual(r.ReimbursedTotal+r.PendingTotal, r.Total) {
		t.Errorf("reimbursed %v + pending %v != total %v", r.ReimbursedTotal, r.PendingTotal, r.Total)
	}
}

func TestExpenseStatsOrderIndependent(t *testing.T) {
	expenses := []models.Expense{
		{Concept: "A", Amount: 12.5, PaidBy: models.PayerEli},
		{Concept: "B", Amount: 40, PaidBy: models.PayerPan, IsReimbursed: true},
		{Concept: "C", Amount: 7.25, PaidBy: models.PayerEli},
		{Concept: "D", Amount: 99.99, PaidBy: models.PayerPan},
	}
	want := ExpenseStats(expenses)

	reversed := make([]models.Expense, len(expenses))
	for i, e := range expenses {
		reversed[len(expenses)-1-i] = e
	}
	got := ExpenseStats(reversed)
	if !almostEqual(got.Total, want.Total) || !almostEqual(got.Difference, want.Difference) ||
		got.PayerOwing != want.PayerOwing || !almostEqual(got.AmountOwed, want.AmountOwed) {
		t.Errorf("reversed input changed result: got %+v, want %+v", got, want)
	}
}

func TestExpenseStatsIdempotent(t *testing.T) {
	expenses := []models.Expense{
		{Concept: "A", Amount: 33.33, PaidBy: models.PayerEli},
		{Concept: "B", Amount: 66.67, PaidBy: models.PayerPan},
	}
	first := ExpenseStats(expenses)
	second := ExpenseStats(expenses)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated computation differs: %+v vs %+v", first, second)
	}
}
