package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"jobboard/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultTTL = 10 * time.Minute

	// scanBatch bounds both the SCAN page size and the keys per UNLINK.
	scanBatch = 100
)

var ErrUnavailable = errors.New("redis unavailable")

// Redis stores JSON values with a TTL. When the server cannot be reached
// at startup every call becomes a no-op, so callers treat an outage like
// a cache miss.
type Redis struct {
	client redis.UniversalClient
	logger *zap.Logger
	ttl    time.Duration

	degraded atomic.Bool
}

func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Redis{logger: logger, ttl: cfg.TTL}
	if r.ttl <= 0 {
		r.ttl = defaultTTL
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, job listings will not be cached", zap.String("addr", cfg.Addr()), zap.Error(err))
		_ = client.Close()
		return r
	}

	r.client = client
	return r
}

func (r *Redis) enabled() bool {
	return r != nil && r.client != nil
}

// degrade logs the first failed command only; a flapping server would
// otherwise flood the log on every request.
func (r *Redis) degrade(op string, err error) {
	if r.degraded.CompareAndSwap(false, true) {
		r.logger.Warn("redis command failed, serving without cache", zap.String("op", op), zap.Error(err))
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if !r.enabled() {
		return ErrUnavailable
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	if !r.enabled() {
		return nil
	}
	return r.client.Close()
}

// GetJSON decodes the value at key into out. A missing key and an entry
// that no longer decodes are both reported as a miss.
func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if !r.enabled() {
		return false, nil
	}

	b, err := r.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		r.degrade("get", err)
		return false, err
	}

	if err := json.Unmarshal(b, out); err != nil {
		r.logger.Warn("dropping undecodable cache entry", zap.String("key", key), zap.Error(err))
		_ = r.client.Unlink(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

// SetJSON stores value under key. ttl <= 0 uses the configured default.
func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !r.enabled() {
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
		r.degrade("set", err)
		return err
	}
	return nil
}

// GetInt reads a counter. A missing key reads as zero.
func (r *Redis) GetInt(ctx context.Context, key string) (int64, error) {
	if !r.enabled() {
		return 0, nil
	}
	n, err := r.client.Get(ctx, key).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		return 0, nil
	case err != nil:
		r.degrade("get", err)
		return 0, err
	}
	return n, nil
}

// Incr bumps a counter with no expiry and returns its new value.
func (r *Redis) Incr(ctx context.Context, key string) (int64, error) {
	if !r.enabled() {
		return 0, nil
	}
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		r.degrade("incr", err)
		return 0, err
	}
	return n, nil
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if !r.enabled() || len(keys) == 0 {
		return nil
	}
	if err := r.client.Unlink(ctx, keys...).Err(); err != nil {
		r.degrade("unlink", err)
		return err
	}
	return nil
}

// DeleteByPattern removes every key matching a glob pattern, scanning and
// unlinking in batches so a large keyspace never blocks the server.
func (r *Redis) DeleteByPattern(ctx context.Context, pattern string) error {
	if !r.enabled() {
		return nil
	}
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}

	removed := 0
	batch := make([]string, 0, scanBatch)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := r.Delete(ctx, batch...); err != nil {
			return err
		}
		removed += len(batch)
		batch = batch[:0]
		return nil
	}

	iter := r.client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		r.degrade("scan", err)
		return err
	}
	if err := flush(); err != nil {
		return err
	}

	r.logger.Debug("cache entries invalidated", zap.String("pattern", pattern), zap.Int("removed", removed))
	return nil
}
