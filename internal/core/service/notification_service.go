package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/devcircle/social-api/internal/core/domain"
	"github.com/devcircle/social-api/internal/core/ports"
)

type notificationService struct {
	repo ports.NotificationRepository
	log  zerolog.Logger
}

// NewNotificationService returns a NotificationService implementation
// backed by the given repository.
func NewNotificationService(repo ports.NotificationRepository, log zerolog.Logger) ports.NotificationService {
	return &notificationService{repo: repo, log: log}
}

// Process persists a single queued like/comment notification.
func (s *notificationService) Process(ctx context.Context, in ports.NotificationInput) error {
	n := &domain.Notification{
		UserID:    in.RecipientID,
		ActorID:   in.ActorID,
		ActorName: in.ActorName,
		Kind:      in.Kind,
		PostID:    in.PostID,
		CreatedAt: in.OccurredAt,
	}
	if err := s.repo.Insert(ctx, n); err != nil {
		return fmt.Errorf("process notification: %w", err)
	}

	s.log.Debug().
		Str("post_id", in.PostID).
		Str("recipient", in.RecipientID).
		Str("kind", string(in.Kind)).
		Msg("notification stored")

	return nil
}

// ListForUser returns the user's notifications, newest first.
func (s *notificationService) ListForUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.repo.FindByUser(ctx, userID)
}
