package ports

import (
	"context"

	"github.com/devcircle/social-api/internal/core/domain"
)

// NotificationRepository persists and lists per-user notifications.
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) error
	FindByUser(ctx context.Context, userID string) ([]domain.Notification, error)
}
