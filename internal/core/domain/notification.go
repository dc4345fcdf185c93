package domain

import "time"

// NotificationKind discriminates what happened to the recipient's post.
type NotificationKind string

const (
	NotificationLike    NotificationKind = "like"
	NotificationComment NotificationKind = "comment"
)

// Notification tells a post author that someone interacted with their
// post. ActorName is a snapshot, same rule as post/comment snapshots.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user"`
	ActorID   string           `json:"actor"`
	ActorName string           `json:"actor_name"`
	Kind      NotificationKind `json:"kind"`
	PostID    string           `json:"post"`
	CreatedAt time.Time        `json:"date"`
}
