package cache

import (
	"context"
	"errors"
	"time"

	"loan-ledger/internal/domain/user"

	"github.com/redis/go-redis/v9"
)

// ErrTokenNotFound covers unknown, used and expired tokens alike.
var ErrTokenNotFound = user.ErrInvalidResetToken

// ResetStore keeps one-shot password reset tokens with a TTL.
type ResetStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewResetStore(rdb *redis.Client, ttl time.Duration) *ResetStore {
	return &ResetStore{rdb: rdb, ttl: ttl, prefix: "pwreset:"}
}

func (s *ResetStore) Put(ctx context.Context, token, userID string) error {
	return s.rdb.Set(ctx, s.prefix+token, userID, s.ttl).Err()
}

// Take returns the user bound to token and deletes it atomically.
func (s *ResetStore) Take(ctx context.Context, token string) (string, error) {
	v, err := s.rdb.GetDel(ctx, s.prefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	return v, err
}
