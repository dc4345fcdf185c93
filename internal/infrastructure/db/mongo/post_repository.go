package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devcircle/social-api/internal/core/domain"
)

const postsCollection = "posts"

type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(postsCollection)}
}

type mongoLike struct {
	UserID string `bson:"user"`
}

type mongoComment struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user"`
	Name      string    `bson:"name"`
	Avatar    string    `bson:"avatar"`
	Text      string    `bson:"text"`
	CreatedAt time.Time `bson:"date"`
}

type mongoPost struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user"`
	Name      string             `bson:"name"`
	Avatar    string             `bson:"avatar"`
	Text      string             `bson:"text"`
	Likes     []mongoLike        `bson:"likes"`
	Comments  []mongoComment     `bson:"comments"`
	CreatedAt time.Time          `bson:"date"`
}

func toMongoPost(p *domain.Post) *mongoPost {
	mp := &mongoPost{
		UserID:    p.UserID,
		Name:      p.Name,
		Avatar:    p.Avatar,
		Text:      p.Text,
		Likes:     make([]mongoLike, 0, len(p.Likes)),
		Comments:  make([]mongoComment, 0, len(p.Comments)),
		CreatedAt: p.CreatedAt,
	}
	for _, l := range p.Likes {
		mp.Likes = append(mp.Likes, mongoLike{UserID: l.UserID})
	}
	for _, c := range p.Comments {
		mp.Comments = append(mp.Comments, mongoComment{
			ID:        c.ID,
			UserID:    c.UserID,
			Name:      c.Name,
			Avatar:    c.Avatar,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}
	return mp
}

func (mp *mongoPost) toDomain() *domain.Post {
	p := &domain.Post{
		ID:        mp.ID.Hex(),
		UserID:    mp.UserID,
		Name:      mp.Name,
		Avatar:    mp.Avatar,
		Text:      mp.Text,
		Likes:     make([]domain.Like, 0, len(mp.Likes)),
		Comments:  make([]domain.Comment, 0, len(mp.Comments)),
		CreatedAt: mp.CreatedAt,
	}
	for _, l := range mp.Likes {
		p.Likes = append(p.Likes, domain.Like{UserID: l.UserID})
	}
	for _, c := range mp.Comments {
		p.Comments = append(p.Comments, domain.Comment{
			ID:        c.ID,
			UserID:    c.UserID,
			Name:      c.Name,
			Avatar:    c.Avatar,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}
	return p
}

// Insert stores a new post and returns it with its assigned id.
func (r *PostRepository) Insert(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoPost(post)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

// FindByID retrieves a post by hex id. Malformed ids and missing documents
// both map to domain.ErrPostNotFound.
func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	var mp mongoPost
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return mp.toDomain(), nil
}

// FindAll returns every post, newest first.
func (r *PostRepository) FindAll(ctx context.Context) ([]domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	var posts []domain.Post
	for cur.Next(ctx) {
		var mp mongoPost
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		posts = append(posts, *mp.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Update replaces the whole post document, mirroring a document save.
// Interleaved updates to the same post can overwrite each other; callers
// own that trade-off.
func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(post.ID)
	if err != nil {
		return domain.ErrPostNotFound
	}

	doc := toMongoPost(post)
	doc.ID = oid

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// Delete removes a post by hex id.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// EnsureIndexes creates the sort index backing the newest-first listing.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: -1}},
	})
	return err
}
