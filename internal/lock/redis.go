package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/abhisek/certprep/internal/logger"
)

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisConfig configures a Redis-backed locker.
type RedisConfig struct {
	// Prefix is prepended to every key. Default: "certprep:lock:".
	Prefix string
	// TTL bounds how long a crashed holder can keep the lock. Default: 10s.
	TTL time.Duration
	// RetryInterval is the pause between acquisition attempts. Default: 25ms.
	RetryInterval time.Duration
}

// DefaultRedisConfig returns a RedisConfig with sensible defaults.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Prefix:        "certprep:lock:",
		TTL:           10 * time.Second,
		RetryInterval: 25 * time.Millisecond,
	}
}

// Redis is a Locker using SET NX PX with a random token per holder.
type Redis struct {
	client redis.Cmdable
	cfg    RedisConfig
	log    *logger.Logger
}

// NewRedis returns a locker on the given client.
func NewRedis(client redis.Cmdable, cfg RedisConfig, log *logger.Logger) *Redis {
	def := DefaultRedisConfig()
	if cfg.Prefix == "" {
		cfg.Prefix = def.Prefix
	}
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = def.RetryInterval
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Redis{client: client, cfg: cfg, log: log}
}

func (r *Redis) Lock(ctx context.Context, key string) (Unlock, error) {
	k := r.cfg.Prefix + key
	token := uuid.NewString()

	for {
		ok, err := r.client.SetNX(ctx, k, token, r.cfg.TTL).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, errors.Join(ErrTimeout, ctxErr)
			}
			return nil, fmt.Errorf("acquire lock %s: %w", k, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrTimeout, ctx.Err())
		case <-time.After(r.cfg.RetryInterval):
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// The caller's context may already be cancelled.
			relCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(relCtx, r.client, []string{k}, token).Err(); err != nil {
				r.log.Warn("release lock failed", "key", k, "error", err)
			}
		})
	}, nil
}

// Ping checks connectivity.
func Ping(ctx context.Context, client *redis.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
