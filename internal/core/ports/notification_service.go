package ports

import (
	"context"
	"time"

	"github.com/devcircle/social-api/internal/core/domain"
)

// NotificationInput is the DTO handed to the dispatcher when a post is
// liked or commented on.
type NotificationInput struct {
	PostID      string
	RecipientID string
	ActorID     string
	ActorName   string
	Kind        domain.NotificationKind
	OccurredAt  time.Time
}

// NotificationService processes queued notification events and serves
// per-user reads.
type NotificationService interface {
	Process(ctx context.Context, in NotificationInput) error
	ListForUser(ctx context.Context, userID string) ([]domain.Notification, error)
}
