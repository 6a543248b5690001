package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	DB "Backend-Attendance/src/database"
	"Backend-Attendance/src/services/sweeper"
)

// releaseLock deletes the key only if it still holds our token.
var releaseLock = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker is a sweeper.Locker shared by every process on the same redis.
type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

func (l *RedisLocker) Lock(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	redisKey := fmt.Sprintf("lock:%s", key)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, redisKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, sweeper.ErrLockHeld
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseLock.Run(ctx, l.client, []string{redisKey}, token).Err(); err != nil {
			log.Printf("⚠️ Warning: failed to release lock %s: %v", key, err)
		}
	}, nil
}

// SweepLocker uses redis when it is connected, otherwise an in-process lock (dev mode).
func SweepLocker() sweeper.Locker {
	if DB.RedisClient == nil {
		return sweeper.NewKeyedLocker()
	}
	return NewRedisLocker(DB.RedisClient)
}
