// Package server exposes the JSON API and the server-rendered pages.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/elipan/partyplan/internal/middleware"
	"github.com/elipan/partyplan/internal/service"
	"github.com/elipan/partyplan/internal/storage"
)

// Server wires the guest and expense services to HTTP routes.
type Server struct {
	guests   *service.GuestService
	expenses *service.ExpenseService
}

// New creates a Server over the given storage backend.
func New(store storage.Store) *Server {
	return &Server{
		guests:   service.NewGuestService(store),
		expenses: service.NewExpenseService(store),
	}
}

// Router builds the full route table with the middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS)

	r.Route("/api", func(r chi.Router) {
		r.Route("/guests", func(r chi.Router) {
			r.Get("/", s.listGuests)
			r.Post("/", s.addGuest)
			r.Get("/stats", s.guestStats)
			r.Get("/export.csv", s.exportGuestsCSV)
			r.Post("/import", s.importGuests)
			r.Post("/import/csv", s.importGuestsCSV)
			r.Patch("/{id}/status", s.updateGuestStatus)
			r.Delete("/{id}", s.deleteGuest)
		})
		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", s.listExpenses)
			r.Post("/", s.addExpense)
			r.Get("/stats", s.expenseStats)
			r.Patch("/{id}", s.patchExpense)
			r.Delete("/{id}", s.deleteExpense)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/invitados", http.StatusSeeOther)
	})
	r.Get("/invitados", s.guestsPage)
	r.Get("/gastos", s.expensesPage)

	return r
}
