package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/exercise-tracker/internal/domain/entity"
)

// ErrUsernameTaken is returned by Create when the store already holds the username.
var ErrUsernameTaken = errors.New("username taken")

// UserRepository defines the interface for user-related database operations.
// Finders return an empty slice, not an error, when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	FindByID(ctx context.Context, id string) ([]entity.User, error)
	FindByUsername(ctx context.Context, username string) ([]entity.User, error)
}
