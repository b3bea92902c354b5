package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/greenbasket/sustainability-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const defaultTTL = 10 * time.Minute

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func buildKey(productID string, k int) string {
	return fmt.Sprintf("rec:product:%s:k:%d", productID, k)
}

// cachedRecommendation is the stored shape; CacheHit is set on read.
type cachedRecommendation struct {
	Base            domain.BaseProductSummary `json:"base"`
	Recommendations []domain.Recommendation   `json:"recommendations"`
	Message         string                    `json:"message,omitempty"`
}

// Get recommendations from cache
func (c *Cache) Get(ctx context.Context, productID string, k int) (*domain.RecommendationResult, bool, error) {
	key := buildKey(productID, k)
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("failed to get recommendations from cache: %w", err)
	}

	var cached cachedRecommendation
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal recommendations %s: %w", key, err)
	}

	return &domain.RecommendationResult{
		Base:            cached.Base,
		Recommendations: cached.Recommendations,
		Message:         cached.Message,
		CacheHit:        true,
	}, true, nil
}

// Store recommendations in cache
func (c *Cache) Set(ctx context.Context, productID string, k int, result *domain.RecommendationResult) error {
	key := buildKey(productID, k)
	val, err := json.Marshal(cachedRecommendation{
		Base:            result.Base,
		Recommendations: result.Recommendations,
		Message:         result.Message,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set recommendations in cache: %w", err)
	}

	return nil
}

// Clear every cached recommendation response: called after the
// catalog is reseeded
func (c *Cache) ClearAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "rec:product:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
