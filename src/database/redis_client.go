package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	RedisURI    string
)

// InitRedis connects when uri is set. An empty uri leaves RedisClient nil and the
// callers fall back to in-process locks and timers.
func InitRedis(uri string) error {
	if uri == "" {
		log.Println("⚠️ REDIS_URI not set. Running without Redis.")
		return nil
	}

	c := redis.NewClient(&redis.Options{
		Addr:     uri, // เช่น localhost:6379
		Password: "",
		DB:       0,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return fmt.Errorf("failed to connect Redis: %w", err)
	}

	RedisClient = c
	RedisURI = uri
	log.Println("✅ Redis connected")
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		_ = RedisClient.Close()
	}
}
