package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event names published on the side channel. Consumers subscribe by name.
const (
	EnterpriseCreated         = "enterprise_created"
	EnterpriseUpdated         = "enterprise_updated"
	EnterpriseDeleted         = "enterprise_deleted"
	InvalidateEnterpriseCache = "invalidate_enterprise_cache"
	CacheEnterprise           = "cache_enterprise"
)

// Cache keys read on the lookaside path. An external consumer owns the
// writes; this service only reads.
const (
	cacheKeyAll    = "enterprise:all"
	cacheKeyPrefix = "enterprise:"
)

const publishTimeout = 2 * time.Second

// Config holds all configuration for the Redis connection
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Client is a wrapper around the go-redis client. It provides the
// fire-and-forget publish path and the best-effort cache reads used by the
// enterprise handlers. A nil Client is valid and degrades every operation to
// a no-op.
type Client struct {
	client *redis.Client
	config *Config
}

// NewClient creates and connects a new events Client.
func NewClient(cfg *Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Addr,
		Password:        cfg.Password,
		DB:              cfg.DB,
		MaxRetries:      5,
		MaxRetryBackoff: 5 * time.Second,
	})

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{
		client: rdb,
		config: cfg,
	}, nil
}

// Close gracefully closes the Redis connection.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Emit publishes an event with a JSON-encoded payload. Failures are logged
// and swallowed so the request path never degrades with the broker.
func (c *Client) Emit(ctx context.Context, event string, payload interface{}) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("Failed to encode event payload", "event", event, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := c.client.Publish(ctx, event, data).Err(); err != nil {
		slog.Warn("Failed to publish event", "event", event, "error", err)
		return
	}
	slog.Debug("Event published", "event", event)
}

// LookupEnterprise checks the lookaside cache for a single enterprise. The
// second return is false on a miss or any Redis failure.
func (c *Client) LookupEnterprise(ctx context.Context, enterpriseID string) ([]byte, bool) {
	return c.lookup(ctx, cacheKeyPrefix+enterpriseID)
}

// LookupAll checks the lookaside cache for the full enterprise listing.
func (c *Client) LookupAll(ctx context.Context) ([]byte, bool) {
	return c.lookup(ctx, cacheKeyAll)
}

func (c *Client) lookup(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("Cache lookup failed", "key", key, "error", err)
		}
		return nil, false
	}
	return data, true
}

// HealthCheck verifies Redis connectivity
func (c *Client) HealthCheck(ctx context.Context) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("events client not configured")
	}
	return c.client.Ping(ctx).Err()
}
