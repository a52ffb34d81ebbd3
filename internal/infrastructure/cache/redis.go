package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"strings"
	"sync/atomic"
	"time"

	"github.com/26nm/careerpath/internal/config"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 10 * time.Minute

var ErrUnavailable = errors.New("redis unavailable")

// Redis is a JSON cache that turns into a no-op when the server cannot be
// reached at startup.
type Redis struct {
	client *redis.Client
	logger *log.Logger
	ttl    time.Duration

	warnedUnavailable atomic.Bool
}

func NewRedis(cfg config.RedisConfig, logger *log.Logger) *Redis {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "localhost"
	}
	port := strings.TrimSpace(cfg.Port)
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if logger != nil {
			logger.Printf("[Cache] Redis unavailable, bypassing cache: %v", err)
		}
		_ = client.Close()
		return &Redis{client: nil, logger: logger, ttl: ttl}
	}

	return &Redis{client: client, logger: logger, ttl: ttl}
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil || r.logger == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Printf("[Cache] Redis unavailable, bypassing cache: %v", err)
	}
}

func (r *Redis) Available() bool {
	return !r.isUnavailable()
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return ErrUnavailable
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnUnavailableOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores value under key. A non-positive ttl uses the configured
// default.
func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.isUnavailable() {
		return nil
	}
	if ttl <= 0 {
		ttl = r.ttl
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

// DeleteByPattern removes every key matching a SCAN glob and reports how
// many were deleted.
func (r *Redis) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	if r.isUnavailable() {
		return 0, ErrUnavailable
	}
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return 0, nil
	}
	return deleteByPattern(ctx, r.client, r.logger, pattern)
}

func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}

func deleteByPattern(ctx context.Context, rdb *redis.Client, logger *log.Logger, pattern string) (int, error) {
	deleted := 0
	iter := rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if err := rdb.Del(ctx, k).Err(); err != nil {
			if logger != nil {
				logger.Printf("[Cache] Redis delete error key=%s pattern=%s err=%v", k, pattern, err)
			}
			continue
		}
		deleted++
	}
	return deleted, iter.Err()
}
