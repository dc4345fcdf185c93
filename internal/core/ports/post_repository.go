package ports

import (
	"context"

	"github.com/devcircle/social-api/internal/core/domain"
)

// PostRepository defines the persistence interface for posts.
//
// FindByID must map malformed ids to domain.ErrPostNotFound rather than
// surfacing a driver error. Update replaces the whole document, which makes
// like/comment mutations read-modify-write; see PostService for the
// resulting concurrency caveat.
type PostRepository interface {
	Insert(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	FindAll(ctx context.Context) ([]domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id string) error
}
