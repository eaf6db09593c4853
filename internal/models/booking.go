package models

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsTerminal reports whether no further transition is permitted out of s.
// Allowed transitions are pending -> confirmed and pending -> cancelled.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusConfirmed || s == BookingStatusCancelled
}

// Booking reserves one slot of a business's daily grid for a user.
// Date is a calendar date string (YYYY-MM-DD) and Time an H:MM grid value.
type Booking struct {
	ID         string        `json:"id"`
	BusinessID string        `json:"businessId"`
	UserID     string        `json:"userId"`
	Date       string        `json:"date"`
	Time       string        `json:"time"`
	Status     BookingStatus `json:"status"`
}

// Favorite is an existence-only record keyed by (UserID, BusinessID).
type Favorite struct {
	UserID     string `json:"userId"`
	BusinessID string `json:"businessId"`
}

// TimeSlot is a derived, never-persisted half-hour bucket of a business's
// daily window. ID is ephemeral and differs between calls.
type TimeSlot struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}
