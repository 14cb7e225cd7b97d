package storage

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"checkin-server/repo"

	"github.com/go-redis/redis/v8"
)

const refreshTokenPrefix = "refresh:"

func InitializeRedis(redisURL string) (*redis.Client, error) {
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, err
		}
		log.Println("Redis initialized with address:", opts.Addr)
		return redis.NewClient(opts), nil
	}

	log.Println("Redis initialized with address:", redisURL)
	return redis.NewClient(&redis.Options{
		Addr: redisURL,
		DB:   0,
	}), nil
}

// RedisTokenStore keeps issued refresh tokens until they are used or expire.
type RedisTokenStore struct {
	client *redis.Client
}

var _ repo.TokenStore = (*RedisTokenStore)(nil)

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Save(ctx context.Context, token string, ttl time.Duration) error {
	return s.client.Set(ctx, refreshTokenPrefix+token, "true", ttl).Err()
}

// Consume reports whether the token was live and removes it in the same step.
func (s *RedisTokenStore) Consume(ctx context.Context, token string) (bool, error) {
	val, err := s.client.GetDel(ctx, refreshTokenPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val == "true", nil
}
