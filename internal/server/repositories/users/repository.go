// Package users implements the persistent user store. The store is the final
// arbiter of username uniqueness: Create maps a violated unique constraint to
// common.ErrorDuplicate regardless of any pre-check the caller performed.
package users

import (
	"context"

	"github.com/dmitrijs2005/authgate/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
