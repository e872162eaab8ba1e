package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/analogalgo/letters/internal/domain/cardology"
	"github.com/analogalgo/letters/internal/platform/logger"
	"github.com/analogalgo/letters/internal/platform/metrics"
)

const letterDataKeyPrefix = "letterdata:"

// KV is the subset of the go-redis API the cache needs. *redis.Client
// satisfies it.
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CalculateFunc computes letter data. It matches cardology.CalculateLetterData.
type CalculateFunc func(name string, birthYear, birthMonth, birthDay int, targetDate string) cardology.LetterResult

// LetterDataCache memoizes engine results in Redis. A nil KV disables the
// cache and every call goes to the engine.
type LetterDataCache struct {
	kv        KV
	ttl       time.Duration
	logger    *slog.Logger
	metrics   *metrics.Metrics
	calculate CalculateFunc
	group     singleflight.Group
}

// CacheOption configures a LetterDataCache.
type CacheOption func(*LetterDataCache)

// WithCalculateFunc replaces the engine call.
func WithCalculateFunc(fn CalculateFunc) CacheOption {
	return func(c *LetterDataCache) { c.calculate = fn }
}

// WithCacheMetrics records hits, misses and engine latency on m.
func WithCacheMetrics(m *metrics.Metrics) CacheOption {
	return func(c *LetterDataCache) { c.metrics = m }
}

// NewLetterDataCache creates a cache over kv.
func NewLetterDataCache(kv KV, ttl time.Duration, logger *slog.Logger, opts ...CacheOption) *LetterDataCache {
	if logger == nil {
		logger = slog.Default()
	}
	c := &LetterDataCache{
		kv:        kv,
		ttl:       ttl,
		logger:    logger.With(slog.String("component", "letter_data_cache")),
		calculate: cardology.CalculateLetterData,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LetterDataKey returns the cache key for a calculation. The name does not
// affect the result and is not part of the key.
func LetterDataKey(req cardology.Request) string {
	return fmt.Sprintf("%s%04d-%02d-%02d:%s",
		letterDataKeyPrefix, req.BirthYear, req.BirthMonth, req.BirthDay, req.TargetDate)
}

// Calculate returns the letter data for req, from Redis when present.
// Redis failures are logged and the engine result is returned uncached.
func (c *LetterDataCache) Calculate(ctx context.Context, req cardology.Request) cardology.LetterResult {
	if c.kv == nil {
		return c.compute(req)
	}

	log := logger.FromContextOrDefault(ctx, c.logger)
	key := LetterDataKey(req)

	if result, ok := c.lookup(ctx, log, key); ok {
		c.metrics.IncrementCacheHit()
		return result
	}
	c.metrics.IncrementCacheMiss()

	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		result := c.compute(req)
		if result.OK() {
			c.store(ctx, log, key, result)
		}
		return result, nil
	})
	return v.(cardology.LetterResult)
}

func (c *LetterDataCache) lookup(ctx context.Context, log *slog.Logger, key string) (cardology.LetterResult, bool) {
	raw, err := c.kv.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return cardology.LetterResult{}, false
	}
	if err != nil {
		log.WarnContext(ctx, "letter data cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return cardology.LetterResult{}, false
	}

	var data cardology.LetterData
	if err := json.Unmarshal(raw, &data); err != nil {
		log.WarnContext(ctx, "discarding malformed cache entry",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return cardology.LetterResult{}, false
	}
	return cardology.LetterResult{LetterData: &data}, true
}

func (c *LetterDataCache) store(ctx context.Context, log *slog.Logger, key string, result cardology.LetterResult) {
	raw, err := json.Marshal(result.LetterData)
	if err != nil {
		log.ErrorContext(ctx, "failed to encode letter data", slog.String("error", err.Error()))
		return
	}
	if err := c.kv.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.WarnContext(ctx, "letter data cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

func (c *LetterDataCache) compute(req cardology.Request) cardology.LetterResult {
	start := time.Now()
	result := c.calculate(req.Name, req.BirthYear, req.BirthMonth, req.BirthDay, req.TargetDate)
	c.metrics.ObserveEngineLatency(time.Since(start))
	return result
}
