// Package businesses provides typed CRUD access to the businesses
// collection. Review and Service sequences are embedded within the record
// as JSON columns and keep insertion order.
package businesses

import (
	"context"

	"github.com/dmitrijs2005/bookit/internal/models"
)

// Repository is the businesses-collection contract. Update merges a patch
// into the stored record and returns the merged record as the new source of
// truth; a missing id yields common.ErrNotFound.
type Repository interface {
	Add(ctx context.Context, business *models.Business) error
	Put(ctx context.Context, business *models.Business) error
	Get(ctx context.Context, id string) (*models.Business, error)
	GetAll(ctx context.Context) ([]models.Business, error)
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, id string, patch models.BusinessPatch) (*models.Business, error)
}
