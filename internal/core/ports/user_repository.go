package ports

import (
	"context"

	"github.com/devcircle/social-api/internal/core/domain"
)

// UserRepository defines the persistence interface for accounts.
// FindByID must return a password-free projection.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) error
}
