package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/devcircle/social-api/internal/core/domain"
	"github.com/devcircle/social-api/internal/core/ports"
)

type recordingService struct {
	mu        sync.Mutex
	processed []ports.NotificationInput
	done      chan struct{}
	expect    int
	failOn    map[string]error
}

func newRecordingService(expect int) *recordingService {
	return &recordingService{done: make(chan struct{}), expect: expect}
}

func (s *recordingService) Process(ctx context.Context, in ports.NotificationInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed = append(s.processed, in)
	if len(s.processed) == s.expect {
		close(s.done)
	}
	if err, ok := s.failOn[in.PostID]; ok {
		return err
	}
	return nil
}

func (s *recordingService) ListForUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	return nil, nil
}

func waitProcessed(t *testing.T, s *recordingService) {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for notifications to be processed")
	}
}

func TestDispatcher_ProcessesEnqueuedEvents(t *testing.T) {
	svc := newRecordingService(3)
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for _, postID := range []string{"p1", "p2", "p3"} {
		d.Enqueue(ports.NotificationInput{PostID: postID, RecipientID: "u1", Kind: domain.NotificationLike})
	}

	waitProcessed(t, svc)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if len(svc.processed) != 3 {
		t.Fatalf("expected 3 processed events, got %d", len(svc.processed))
	}
}

func TestDispatcher_WorkerSurvivesProcessFailure(t *testing.T) {
	svc := newRecordingService(3)
	svc.failOn = map[string]error{"poison": errors.New("insert failed")}
	d := NewDispatcher(1, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.NotificationInput{PostID: "before", Kind: domain.NotificationLike})
	d.Enqueue(ports.NotificationInput{PostID: "poison", Kind: domain.NotificationLike})
	d.Enqueue(ports.NotificationInput{PostID: "after", Kind: domain.NotificationLike})

	waitProcessed(t, svc)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if got := svc.processed[len(svc.processed)-1].PostID; got != "after" {
		t.Fatalf("worker stopped after failure, last processed %q", got)
	}
}

func TestDispatcher_SamePostSameWorker(t *testing.T) {
	d := NewDispatcher(4, newRecordingService(0), zerolog.Nop())

	first := d.shardIndex("post_abc")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("post_abc"); got != first {
			t.Fatalf("shard index not stable: %d vs %d", got, first)
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_OrderPreservedPerPost(t *testing.T) {
	svc := newRecordingService(5)
	d := NewDispatcher(3, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		d.Enqueue(ports.NotificationInput{
			PostID:     "same_post",
			Kind:       domain.NotificationComment,
			OccurredAt: base.Add(time.Duration(i) * time.Second),
		})
	}

	waitProcessed(t, svc)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	for i := 1; i < len(svc.processed); i++ {
		if svc.processed[i].OccurredAt.Before(svc.processed[i-1].OccurredAt) {
			t.Fatalf("events for one post processed out of order")
		}
	}
}
