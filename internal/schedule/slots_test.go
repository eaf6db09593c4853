package schedule

import (
	"testing"

	"github.com/dmitrijs2005/bookit/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDate = "2025-06-15"

func TestGenerateSlots_EmptyDay(t *testing.T) {
	slots := DefaultGrid().GenerateSlots(testDate, nil)

	require.Len(t, slots, 20)
	assert.Equal(t, "9:00", slots[0].Time)
	assert.Equal(t, "9:30", slots[1].Time)
	assert.Equal(t, "18:30", slots[19].Time)

	for _, s := range slots {
		assert.True(t, s.Available)
		assert.Equal(t, testDate, s.Date)
		assert.NotEmpty(t, s.ID)
	}
}

func TestGenerateSlots_ConfirmedBookingBlocksItsSlot(t *testing.T) {
	bookings := []models.Booking{
		{ID: "b1", Date: testDate, Time: "10:00", Status: models.BookingStatusConfirmed},
	}

	slots := DefaultGrid().GenerateSlots(testDate, bookings)

	require.Len(t, slots, 20)
	for _, s := range slots {
		if s.Time == "10:00" {
			assert.False(t, s.Available, "booked slot must be unavailable")
		} else {
			assert.True(t, s.Available, "slot %s must stay available", s.Time)
		}
	}
}

func TestGenerateSlots_PendingBookingAlsoBlocks(t *testing.T) {
	bookings := []models.Booking{
		{ID: "b1", Date: testDate, Time: "14:30", Status: models.BookingStatusPending},
	}

	slots := DefaultGrid().GenerateSlots(testDate, bookings)
	for _, s := range slots {
		if s.Time == "14:30" {
			assert.False(t, s.Available)
		}
	}
}

func TestGenerateSlots_CancelledBookingBlocksNothing(t *testing.T) {
	bookings := []models.Booking{
		{ID: "b1", Date: testDate, Time: "10:00", Status: models.BookingStatusCancelled},
	}

	slots := DefaultGrid().GenerateSlots(testDate, bookings)
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestGenerateSlots_OtherDateIgnored(t *testing.T) {
	bookings := []models.Booking{
		{ID: "b1", Date: "2025-06-16", Time: "10:00", Status: models.BookingStatusConfirmed},
	}

	slots := DefaultGrid().GenerateSlots(testDate, bookings)
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestGenerateSlots_OffGridTimeNeverMatches(t *testing.T) {
	bookings := []models.Booking{
		{ID: "b1", Date: testDate, Time: "10:15", Status: models.BookingStatusConfirmed},
		{ID: "b2", Date: testDate, Time: "09:00", Status: models.BookingStatusConfirmed}, // padded form is off-grid
	}

	slots := DefaultGrid().GenerateSlots(testDate, bookings)
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestGenerateSlots_IdempotentApartFromIDs(t *testing.T) {
	bookings := []models.Booking{
		{ID: "b1", Date: testDate, Time: "11:30", Status: models.BookingStatusConfirmed},
	}

	a := DefaultGrid().GenerateSlots(testDate, bookings)
	b := DefaultGrid().GenerateSlots(testDate, bookings)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Time, b[i].Time)
		assert.Equal(t, a[i].Available, b[i].Available)
		assert.NotEqual(t, a[i].ID, b[i].ID, "slot IDs are ephemeral per call")
	}
}

func TestGenerateSlots_CustomGrid(t *testing.T) {
	g := Grid{OpeningHour: 8, ClosingHour: 10, IntervalMinutes: 60}
	slots := g.GenerateSlots(testDate, nil)

	require.Len(t, slots, 2)
	assert.Equal(t, "8:00", slots[0].Time)
	assert.Equal(t, "9:00", slots[1].Time)
}

func TestGenerateSlots_NonPositiveInterval(t *testing.T) {
	for _, interval := range []int{0, -30} {
		g := Grid{OpeningHour: 9, ClosingHour: 19, IntervalMinutes: interval}
		assert.Empty(t, g.GenerateSlots(testDate, nil), "interval %d yields no slots", interval)
	}
}
