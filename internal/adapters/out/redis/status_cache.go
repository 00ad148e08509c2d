// Package redis provides the Redis-backed implementation of the order status
// cache port. Tracking screens poll order status far more often than it
// changes; the cache absorbs that read load with a short TTL so a missed
// invalidation self-heals.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/redis/go-redis/v9"
)

const (
	// keyOrderStatus is the cache key pattern: order_status:{order_id} -> "DELIVERED"
	keyOrderStatus = "order_status:%s"

	ttlStatusCache = 5 * time.Minute
)

// OrderStatusCache caches order statuses in Redis.
// Implements ports.OrderStatusCache. All failures are best-effort: a broken
// cache degrades to database reads, never to errors.
type OrderStatusCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewOrderStatusCache creates a cache over an existing Redis client.
func NewOrderStatusCache(client *redis.Client, logger *slog.Logger) *OrderStatusCache {
	return &OrderStatusCache{
		client: client,
		logger: logger.With("component", "order_status_cache"),
	}
}

// Set stores the status under order_status:{id} with a short TTL.
// Failures are logged and discarded.
func (c *OrderStatusCache) Set(ctx context.Context, orderID kernel.UUID, status order.Status) {
	key := fmt.Sprintf(keyOrderStatus, orderID.String())
	if err := c.client.Set(ctx, key, status.String(), ttlStatusCache).Err(); err != nil {
		c.logger.Warn("failed to cache order status", "order_id", orderID.String(), "error", err)
	}
}

// Get returns the cached status and whether it was present. A cached value
// that no longer parses is treated as a miss.
func (c *OrderStatusCache) Get(ctx context.Context, orderID kernel.UUID) (order.Status, bool) {
	key := fmt.Sprintf(keyOrderStatus, orderID.String())

	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("failed to read order status cache", "order_id", orderID.String(), "error", err)
		}
		return order.Unknown, false
	}

	status, err := order.StatusFromString(raw)
	if err != nil {
		return order.Unknown, false
	}

	return status, true
}
