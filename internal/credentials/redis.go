package credentials

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/KirkDiggler/pokequest/internal/errors"
	redisclient "github.com/KirkDiggler/pokequest/internal/redis"
)

// RedisConfig holds the configuration for the Redis-backed store
type RedisConfig struct {
	Client redisclient.Client
	// Key defaults to DefaultKey
	Key string
	// TTL expires the token after the given duration; zero keeps it until cleared
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.TTL < 0 {
		vb.InvalidField("TTL", "must not be negative")
	}

	return vb.Build()
}

type redisStore struct {
	client redisclient.Client
	key    string
	ttl    time.Duration
}

// NewRedisStore creates a token store backed by a single Redis key
func NewRedisStore(cfg *RedisConfig) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}

	return &redisStore{
		client: cfg.Client,
		key:    key,
		ttl:    cfg.TTL,
	}, nil
}

func (r *redisStore) Get(ctx context.Context) (string, error) {
	token, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if stderrors.Is(err, redisclient.Nil) {
			return "", ErrMissing()
		}
		return "", errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read credential from Redis")
	}
	if token == "" {
		return "", ErrMissing()
	}
	return token, nil
}

func (r *redisStore) Set(ctx context.Context, token string) error {
	if err := validateToken(token); err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.key, token, r.ttl).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to store credential in Redis")
	}
	return nil
}

func (r *redisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to clear credential in Redis")
	}
	return nil
}
