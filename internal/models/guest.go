package models

// GuestStatus is the RSVP state of a guest entry.
type GuestStatus string

const (
	StatusPending   GuestStatus = "pending"
	StatusConfirmed GuestStatus = "confirmed"
	StatusDeclined  GuestStatus = "declined"
)

// ValidGuestStatus reports whether s is one of the three known RSVP states.
func ValidGuestStatus(s GuestStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDeclined:
		return true
	}
	return false
}

// Guest represents one invitation: a party of attendees with an RSVP status.
// A single entry covers Adults + Children people.
type Guest struct {
	// ID is the unique identifier for the guest (UUID format).
	// Assigned by the store, immutable once created.
	ID string `json:"id"`

	// Name is the invitation's display name. Never empty.
	Name string `json:"name"`

	// Status is the RSVP state. New guests always start as pending.
	Status GuestStatus `json:"status"`

	// Adults is the number of adult attendees in the party (>= 0).
	Adults int `json:"adults"`

	// Children is the number of child attendees in the party (>= 0).
	// A party with children always has at least one adult.
	Children int `json:"children"`

	// CreatedAt is the Unix timestamp when the guest was created.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is refreshed on every mutation.
	UpdatedAt int64 `json:"updatedAt"`
}

// GuestCandidate is an unvalidated guest as submitted by a form or an
// import row, before the store has assigned an identity.
type GuestCandidate struct {
	Name     string      `json:"name"`
	Status   GuestStatus `json:"status"`
	Adults   int         `json:"adults"`
	Children int         `json:"children"`
}
