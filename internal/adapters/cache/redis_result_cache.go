package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"logistic-viability-service/internal/domain"
)

const keyPrefix = "viability:result:"

// RedisResultCache is a Redis-backed implementation of the ResultCache port.
// Scenario evaluation is deterministic, so cached results never go stale
// while the base network is unchanged; the TTL bounds staleness across
// reloads of the base data.
type RedisResultCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisResultCache(client *redis.Client, ttl time.Duration) *RedisResultCache {
	return &RedisResultCache{Client: client, TTL: ttl}
}

// NewRedisResultCacheFromURL builds a cache from a redis:// URL.
func NewRedisResultCacheFromURL(url string, ttl time.Duration) (*RedisResultCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("result cache: parse redis url: %w", err)
	}
	return NewRedisResultCache(redis.NewClient(opts), ttl), nil
}

func (c *RedisResultCache) Get(ctx context.Context, key string) (domain.ViabilityResult, bool, error) {
	if c.Client == nil {
		return domain.ViabilityResult{}, false, errors.New("result cache: client is nil")
	}

	raw, err := c.Client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ViabilityResult{}, false, nil
	}
	if err != nil {
		return domain.ViabilityResult{}, false, fmt.Errorf("result cache: get key=%q: %w", key, err)
	}

	var result domain.ViabilityResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return domain.ViabilityResult{}, false, fmt.Errorf("result cache: decode key=%q: %w", key, err)
	}

	return result, true, nil
}

func (c *RedisResultCache) Put(ctx context.Context, key string, result domain.ViabilityResult) error {
	if c.Client == nil {
		return errors.New("result cache: client is nil")
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("result cache: encode key=%q: %w", key, err)
	}
	if err := c.Client.Set(ctx, keyPrefix+key, raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("result cache: set key=%q: %w", key, err)
	}

	return nil
}

// ScenarioKey fingerprints scenario parameters for cache lookup. Identical
// parameters always hash identically: struct field order fixes the JSON
// layout.
func ScenarioKey(params domain.ScenarioParams) string {
	raw, err := json.Marshal(params)
	if err != nil {
		// ScenarioParams contains only plain values; Marshal cannot fail.
		panic(fmt.Sprintf("scenario key: marshal params: %v", err))
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
