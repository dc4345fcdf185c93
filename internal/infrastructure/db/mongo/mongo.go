package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// connectTimeout bounds the initial connect + ping handshake.
	connectTimeout = 10 * time.Second
	// defaultTimeout bounds every repository operation.
	defaultTimeout = 5 * time.Second
)

// Connect establishes a MongoDB client, verifies connectivity with a ping,
// and returns both the client and the selected database.
func Connect(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(database), nil
}

// EnsureIndexes creates the indexes every collection relies on: the unique
// email index on users, and the sort/listing indexes on posts and
// notifications. Run once at startup, before serving traffic.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ensure := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"users", NewUserRepository(db).EnsureIndexes},
		{"posts", NewPostRepository(db).EnsureIndexes},
		{"notifications", NewNotificationRepository(db).EnsureIndexes},
	}
	for _, e := range ensure {
		if err := e.fn(ctx); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", e.name, err)
		}
	}
	return nil
}
