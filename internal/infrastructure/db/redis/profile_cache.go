package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/devcircle/social-api/internal/core/ports"
)

const profileTTL = 15 * time.Minute

// ProfileCache serves the {name, avatar} snapshots stamped onto posts and
// comments, caching them in Redis in front of the user store.
// Key format: profile:<user_id>
//
// Cache failures degrade to a direct store read; they never fail the
// request.
type ProfileCache struct {
	client *redis.Client
	users  ports.UserRepository
	log    zerolog.Logger
}

// NewProfileCache creates a ProfileCache wrapping the given Redis client
// and user repository.
func NewProfileCache(client *redis.Client, users ports.UserRepository, log zerolog.Logger) *ProfileCache {
	return &ProfileCache{client: client, users: users, log: log}
}

type cachedProfile struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Snapshot returns the user's current name and avatar, from cache when
// fresh. The snapshot written by callers is deliberately not invalidated
// on later profile edits.
func (c *ProfileCache) Snapshot(ctx context.Context, userID string) (string, string, error) {
	key := c.key(userID)

	raw, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var p cachedProfile
		if jsonErr := json.Unmarshal([]byte(raw), &p); jsonErr == nil {
			return p.Name, p.Avatar, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Str("user_id", userID).Msg("profile cache read failed, falling back to store")
	}

	user, err := c.users.FindByID(ctx, userID)
	if err != nil {
		return "", "", err
	}

	if buf, jsonErr := json.Marshal(cachedProfile{Name: user.Name, Avatar: user.Avatar}); jsonErr == nil {
		if setErr := c.client.Set(ctx, key, buf, profileTTL).Err(); setErr != nil {
			c.log.Warn().Err(setErr).Str("user_id", userID).Msg("profile cache write failed")
		}
	}

	return user.Name, user.Avatar, nil
}

func (c *ProfileCache) key(userID string) string {
	return fmt.Sprintf("profile:%s", userID)
}
