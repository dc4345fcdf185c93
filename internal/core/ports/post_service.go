package ports

import (
	"context"

	"github.com/devcircle/social-api/internal/core/domain"
)

type PostService interface {
	Create(ctx context.Context, userID, text string) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	Delete(ctx context.Context, id, userID string) error
	Like(ctx context.Context, id, userID string) ([]domain.Like, error)
	Unlike(ctx context.Context, id, userID string) ([]domain.Like, error)
	AddComment(ctx context.Context, id, userID, text string) ([]domain.Comment, error)
	DeleteComment(ctx context.Context, id, commentID, userID string) ([]domain.Comment, error)
}
