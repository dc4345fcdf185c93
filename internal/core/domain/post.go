package domain

import (
	"errors"
	"time"
)

var ErrPostNotFound = errors.New("post not found")
var ErrCommentNotFound = errors.New("comment not found")
var ErrNotAuthorized = errors.New("user not authorized")
var ErrAlreadyLiked = errors.New("post already liked")
var ErrNotLiked = errors.New("post has not been liked")

// Like records that a user liked a post. At most one Like per
// (post, user) pair.
type Like struct {
	UserID string `json:"user" bson:"user"`
}

// Comment is a reply attached to a post. Name and Avatar are a snapshot
// of the author's profile taken when the comment was written.
type Comment struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user" bson:"user"`
	Name      string    `json:"name" bson:"name"`
	Avatar    string    `json:"avatar" bson:"avatar"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"date" bson:"date"`
}

// Post is the core aggregate: the author snapshot, the text body, and the
// ordered like and comment sequences (both most-recent-first).
//
// Name and Avatar are denormalized from the author at creation time and
// intentionally never refreshed when the profile changes later.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Text      string    `json:"text"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"date"`
}

// LikedBy reports whether userID is present in the like sequence.
func (p *Post) LikedBy(userID string) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// CommentByID returns the comment with the given id, or nil. Lookup is by
// the comment's own identity, never by matching author ids.
func (p *Post) CommentByID(commentID string) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return &p.Comments[i]
		}
	}
	return nil
}
