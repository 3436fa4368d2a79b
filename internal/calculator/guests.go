// Package calculator holds the pure statistical reductions over the
// in-memory record collections. Every function recomputes from scratch
// on each call; results depend only on the input collection, never on
// element order.
package calculator

import "github.com/elipan/partyplan/internal/models"

// GuestStatsResult summarizes attendance by RSVP state.
// Declined guests are excluded from every figure.
type GuestStatsResult struct {
	// ConfirmedAdults and ConfirmedChildren count people (not entries)
	// across guests with status confirmed.
	ConfirmedAdults   int `json:"confirmedAdults"`
	ConfirmedChildren int `json:"confirmedChildren"`
	ConfirmedTotal    int `json:"confirmedTotal"`

	// PendingAdults and PendingChildren count people across guests
	// still pending.
	PendingAdults   int `json:"pendingAdults"`
	PendingChildren int `json:"pendingChildren"`
	PendingTotal    int `json:"pendingTotal"`

	// PendingCount counts guest entries (invitations), not people.
	PendingCount int `json:"pendingCount"`
}

// GuestStats reduces the guest collection to confirmed and pending
// headcounts. Guests with an unknown status contribute nothing; one
// bad record must not blank out the dashboard.
func GuestStats(guests []models.Guest) GuestStatsResult {
	var r GuestStatsResult
	for _, g := range guests {
		switch g.Status {
		case models.StatusConfirmed:
			r.ConfirmedAdults += g.Adults
			r.ConfirmedChildren += g.Children
		case models.StatusPending:
			r.PendingAdults += g.Adults
			r.PendingChildren += g.Children
			r.PendingCount++
		}
	}
	r.ConfirmedTotal = r.ConfirmedAdults + r.ConfirmedChildren
	r.PendingTotal = r.PendingAdults + r.PendingChildren
	return r
}
