// Package users provides typed CRUD access to the users collection.
package users

import (
	"context"

	"github.com/dmitrijs2005/bookit/internal/models"
)

// Repository is the users-collection contract. Add fails with
// common.ErrAlreadyExists when the primary key (or the unique email index)
// is already taken; Put upserts unconditionally; Get returns
// common.ErrNotFound for a missing key; Delete no-ops when absent.
type Repository interface {
	Add(ctx context.Context, user *models.User) error
	Put(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id string) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
