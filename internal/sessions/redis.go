package sessions

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/asthmaai/asthmaai-backend/internal/logger"
	"github.com/asthmaai/asthmaai-backend/internal/types"
)

const redisKeyPrefix = "session:"

// RedisStore keeps sessions as plain keys with a redis TTL, so expiry needs no sweeper.
type RedisStore struct {
	log			*logger.Logger
	client	*redis.Client
	ttl			time.Duration
}

func NewRedisStore(log *logger.Logger, address, password string, ttl time.Duration) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:			address,
		Password:	password,
		DB:				0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &RedisStore{
		log:		log.With("store", "RedisSessionStore"),
		client:	rdb,
		ttl:		ttl,
	}, nil
}

func (rs *RedisStore) Create(ctx context.Context, userID int) (*types.Session, error) {
	s := types.Session{
		ID:					uuid.NewString(),
		UserID:			userID,
		ExpiresAt:	time.Now().Add(rs.ttl),
	}
	if err := rs.client.Set(ctx, sessionKey(s.ID), strconv.Itoa(userID), rs.ttl).Err(); err != nil {
		rs.log.Warn("Failed to store session in redis", "error", err)
		return nil, fmt.Errorf("failed storing session: %w", err)
	}
	return &s, nil
}

func (rs *RedisStore) Get(ctx context.Context, id string) (*types.Session, error) {
	key := sessionKey(id)
	val, err := rs.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed loading session: %w", err)
	}
	userID, err := strconv.Atoi(val)
	if err != nil {
		rs.log.Warn("Corrupt session value, dropping it", "error", err)
		_ = rs.client.Del(ctx, key).Err()
		return nil, nil
	}
	ttl, err := rs.client.TTL(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed loading session ttl: %w", err)
	}
	// -2: key vanished between GET and TTL; -1: no expiry set.
	if ttl == -2 {
		return nil, nil
	}
	expiresAt := time.Now().Add(rs.ttl)
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	return &types.Session{ID: id, UserID: userID, ExpiresAt: expiresAt}, nil
}

func (rs *RedisStore) Delete(ctx context.Context, id string) error {
	if err := rs.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed deleting session: %w", err)
	}
	return nil
}

func (rs *RedisStore) Close() error {
	return rs.client.Close()
}

func sessionKey(id string) string {
	return redisKeyPrefix + id
}
