// Package favorites provides access to the favorites collection: existence
// only records keyed by (userId, businessId).
package favorites

import (
	"context"

	"github.com/dmitrijs2005/bookit/internal/models"
)

// Repository is the favorites-collection contract. Put and Delete are
// idempotent: adding an existing favorite overwrites it identically and
// removing a missing one is a no-op.
type Repository interface {
	Put(ctx context.Context, userID, businessID string) error
	Delete(ctx context.Context, userID, businessID string) error
	GetByUser(ctx context.Context, userID string) ([]models.Favorite, error)
	Exists(ctx context.Context, userID, businessID string) (bool, error)
}
