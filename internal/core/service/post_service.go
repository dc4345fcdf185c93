package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/devcircle/social-api/internal/core/domain"
	"github.com/devcircle/social-api/internal/core/ports"
)

// ProfileSource yields the author name/avatar snapshot stamped onto new
// posts and comments (Redis cache in front of the user store).
type ProfileSource interface {
	Snapshot(ctx context.Context, userID string) (name, avatar string, err error)
}

// NotificationDispatcher is the interface the post service uses to hand
// off like/comment notifications for async processing.
type NotificationDispatcher interface {
	Enqueue(in ports.NotificationInput)
}

// PostService implements all post, like, and comment mutations with
// ownership enforcement.
//
// Mutations are read-modify-write against a single post document with no
// per-document locking, so concurrent toggles on the same post can lose
// updates. That matches the behavior this service replaces and is a known,
// accepted limitation.
type PostService struct {
	posts    ports.PostRepository
	profiles ProfileSource
	notify   NotificationDispatcher
	log      zerolog.Logger
}

func NewPostService(posts ports.PostRepository, profiles ProfileSource, notify NotificationDispatcher, log zerolog.Logger) *PostService {
	return &PostService{posts: posts, profiles: profiles, notify: notify, log: log}
}

// Create persists a new post stamped with the author's current profile
// snapshot.
func (s *PostService) Create(ctx context.Context, userID, text string) (*domain.Post, error) {
	name, avatar, err := s.profiles.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		UserID:    userID,
		Name:      name,
		Avatar:    avatar,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.posts.Insert(ctx, post)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("post_id", created.ID).Str("user_id", userID).Msg("post created")
	return created, nil
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	return s.posts.FindAll(ctx)
}

// Get returns a single post by id.
func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

// Delete removes a post. Only the author may delete it.
func (s *PostService) Delete(ctx context.Context, id, userID string) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return domain.ErrNotAuthorized
	}
	return s.posts.Delete(ctx, id)
}

// Like prepends a like for userID and returns the updated like sequence.
// A second like by the same user is rejected.
func (s *PostService) Like(ctx context.Context, id, userID string) ([]domain.Like, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.LikedBy(userID) {
		return nil, domain.ErrAlreadyLiked
	}

	post.Likes = append([]domain.Like{{UserID: userID}}, post.Likes...)
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	s.enqueueNotification(ctx, post, userID, domain.NotificationLike)
	return post.Likes, nil
}

// Unlike removes userID's like and returns the updated like sequence.
func (s *PostService) Unlike(ctx context.Context, id, userID string) ([]domain.Like, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.LikedBy(userID) {
		return nil, domain.ErrNotLiked
	}

	likes := make([]domain.Like, 0, len(post.Likes)-1)
	for _, l := range post.Likes {
		if l.UserID != userID {
			likes = append(likes, l)
		}
	}
	post.Likes = likes

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post.Likes, nil
}

// AddComment prepends a comment (most-recent-first ordering) stamped with
// the commenter's profile snapshot, and returns the updated sequence.
func (s *PostService) AddComment(ctx context.Context, id, userID, text string) ([]domain.Comment, error) {
	name, avatar, err := s.profiles.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comment := domain.Comment{
		ID:        NewID(),
		UserID:    userID,
		Name:      name,
		Avatar:    avatar,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	post.Comments = append([]domain.Comment{comment}, post.Comments...)

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	s.enqueueNotification(ctx, post, userID, domain.NotificationComment)
	return post.Comments, nil
}

// DeleteComment removes the comment with the given id. The comment is
// located by its own identity, so an author with several comments on one
// post loses exactly the one addressed. Only the comment's author may
// delete it.
func (s *PostService) DeleteComment(ctx context.Context, id, commentID, userID string) ([]domain.Comment, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comment := post.CommentByID(commentID)
	if comment == nil {
		return nil, domain.ErrCommentNotFound
	}
	if comment.UserID != userID {
		return nil, domain.ErrNotAuthorized
	}

	comments := make([]domain.Comment, 0, len(post.Comments)-1)
	for _, c := range post.Comments {
		if c.ID != commentID {
			comments = append(comments, c)
		}
	}
	post.Comments = comments

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post.Comments, nil
}

// enqueueNotification hands a like/comment event to the dispatcher. Authors
// are not notified about their own activity.
func (s *PostService) enqueueNotification(ctx context.Context, post *domain.Post, actorID string, kind domain.NotificationKind) {
	if s.notify == nil || post.UserID == actorID {
		return
	}

	actorName, _, err := s.profiles.Snapshot(ctx, actorID)
	if err != nil {
		s.log.Warn().Err(err).Str("actor_id", actorID).Msg("skipping notification, actor lookup failed")
		return
	}

	s.notify.Enqueue(ports.NotificationInput{
		PostID:      post.ID,
		RecipientID: post.UserID,
		ActorID:     actorID,
		ActorName:   actorName,
		Kind:        kind,
		OccurredAt:  time.Now().UTC(),
	})
}
