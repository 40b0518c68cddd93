package userRepo

import (
	"context"

	"unisched/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create inserts a new user; a taken username or email yields database.ErrDuplicate.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// ExistsByUsernameOrEmail reports whether either identifier is taken.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	// GetByIDs resolves a set of users keyed by ID; unknown IDs are skipped.
	GetByIDs(ctx context.Context, ids []string) (map[string]models.User, error)
}
