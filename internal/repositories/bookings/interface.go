// Package bookings provides typed CRUD access to the bookings collection.
package bookings

import (
	"context"

	"github.com/dmitrijs2005/bookit/internal/models"
)

// Repository is the bookings-collection contract. UpdateStatus silently
// no-ops when the booking no longer exists or has already reached a
// terminal status (pending is the only state transitions leave).
type Repository interface {
	Add(ctx context.Context, booking *models.Booking) error
	Get(ctx context.Context, id string) (*models.Booking, error)
	GetByBusiness(ctx context.Context, businessID string) ([]models.Booking, error)
	GetByUser(ctx context.Context, userID string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error
}
