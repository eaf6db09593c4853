// Package schedule derives a day's bookable time slots from a business's
// existing bookings. It is pure: identical input yields identical output
// (apart from the ephemeral slot IDs) and nothing is ever persisted.
package schedule

import (
	"fmt"

	"github.com/dmitrijs2005/bookit/internal/models"
	"github.com/google/uuid"
)

// Grid describes the fixed daily booking window. ClosingHour is exclusive,
// IntervalMinutes is the slot granularity.
type Grid struct {
	OpeningHour     int
	ClosingHour     int
	IntervalMinutes int
}

// DefaultGrid is the 9:00–19:00 window at 30-minute granularity
// (20 slots per day).
func DefaultGrid() Grid {
	return Grid{OpeningHour: 9, ClosingHour: 19, IntervalMinutes: 30}
}

// FormatTime renders a grid point in the canonical H:MM form used by stored
// bookings (no zero padding on the hour).
func FormatTime(hour, minute int) string {
	return fmt.Sprintf("%d:%02d", hour, minute)
}

// GenerateSlots enumerates the grid for date in ascending time order and
// marks each slot unavailable iff some supplied booking matches its date and
// time with a status other than cancelled. Cancelled bookings are filtered
// here; callers pass raw booking sets. A booking whose time string is off the grid
// never matches; that is a caller error, not validated at this layer.
//
// Slot IDs are fresh per call since slots are never stored.
//
// A grid with a non-positive interval has no valid slot points and yields no
// slots, same as an empty window.
func (g Grid) GenerateSlots(date string, bookings []models.Booking) []models.TimeSlot {
	if g.IntervalMinutes <= 0 {
		return nil
	}

	var slots []models.TimeSlot

	for hour := g.OpeningHour; hour < g.ClosingHour; hour++ {
		for minute := 0; minute < 60; minute += g.IntervalMinutes {
			time := FormatTime(hour, minute)

			booked := false
			for _, b := range bookings {
				if b.Status == models.BookingStatusCancelled {
					continue
				}
				if b.Date == date && b.Time == time {
					booked = true
					break
				}
			}

			slots = append(slots, models.TimeSlot{
				ID:        uuid.NewString(),
				Date:      date,
				Time:      time,
				Available: !booked,
			})
		}
	}

	return slots
}
