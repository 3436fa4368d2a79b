package server

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/elipan/partyplan/internal/calculator"
	"github.com/elipan/partyplan/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

var funcMap = template.FuncMap{
	"money": func(amount float64) string {
		return fmt.Sprintf("%.2f", amount)
	},
	"statusText": func(s models.GuestStatus) string {
		switch s {
		case models.StatusPending:
			return "Pendiente"
		case models.StatusConfirmed:
			return "Confirmado"
		case models.StatusDeclined:
			return "Rechazado"
		}
		return string(s)
	},
}

var (
	guestsTmpl = template.Must(template.New("layout.html").Funcs(funcMap).
			ParseFS(templatesFS, "templates/layout.html", "templates/guests.html"))
	expensesTmpl = template.Must(template.New("layout.html").Funcs(funcMap).
			ParseFS(templatesFS, "templates/layout.html", "templates/expenses.html"))
)

type guestsPageData struct {
	Guests []models.Guest
	Stats  calculator.GuestStatsResult
}

type expensesPageData struct {
	Expenses []models.Expense
	Stats    calculator.ExpenseStatsResult
	Eli      models.Payer
	Pan      models.Payer
}

func (s *Server) guestsPage(w http.ResponseWriter, r *http.Request) {
	guests, err := s.guests.List(r.Context())
	if err != nil {
		renderError(w, err)
		return
	}

	data := guestsPageData{
		Guests: guests,
		Stats:  calculator.GuestStats(guests),
	}
	if err := guestsTmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		slog.Error("Failed to render guests page", "error", err)
	}
}

func (s *Server) expensesPage(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.List(r.Context())
	if err != nil {
		renderError(w, err)
		return
	}

	data := expensesPageData{
		Expenses: expenses,
		Stats:    calculator.ExpenseStats(expenses),
		Eli:      models.PayerEli,
		Pan:      models.PayerPan,
	}
	if err := expensesTmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		slog.Error("Failed to render expenses page", "error", err)
	}
}

func renderError(w http.ResponseWriter, err error) {
	slog.Error("Page handler failed", "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
