package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dozr/sleeptrack/internal/auth"
	"github.com/dozr/sleeptrack/internal/common"
)

const sessionKeyPrefix = "session:"

// Store keeps login sessions in Redis with a sliding-free TTL. Session ids
// are ULIDs; the value is the owning user id.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) Create(ctx context.Context, userID string) (string, error) {
	sid, err := common.NewULID()
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, sessionKeyPrefix+sid, userID, s.ttl).Err(); err != nil {
		return "", err
	}
	return sid, nil
}

func (s *Store) Get(ctx context.Context, sessionID string) (string, error) {
	userID, err := s.rdb.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", auth.ErrNoSession
		}
		return "", err
	}
	return userID, nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
