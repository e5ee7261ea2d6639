package siwe

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const noncePrefix = "siwe:nonce:"

// RedisNonceStore keeps nonces in Redis with a TTL. GETDEL makes the
// consume step atomic, so a nonce can never verify two signatures.
type RedisNonceStore struct {
	rdb *redis.Client
}

func NewRedisNonceStore(rdb *redis.Client) *RedisNonceStore {
	return &RedisNonceStore{rdb: rdb}
}

func (s *RedisNonceStore) Put(ctx context.Context, nonce, address string, ttl time.Duration) error {
	return s.rdb.Set(ctx, noncePrefix+nonce, address, ttl).Err()
}

func (s *RedisNonceStore) Consume(ctx context.Context, nonce string) (string, error) {
	address, err := s.rdb.GetDel(ctx, noncePrefix+nonce).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNonceUnknown
	}
	if err != nil {
		return "", err
	}
	return address, nil
}
