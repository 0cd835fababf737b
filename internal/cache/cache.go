// Package cache keeps rendered documents in Redis, keyed by a digest of the
// render request.
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
	"go.uber.org/zap"

	"github.com/invoicing-renderer/internal/config"
	"github.com/invoicing-renderer/pkg/invoice"
)

const keyPrefix = "invoicing:render:"

// kv is the subset of the Redis client the cache needs.
type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Request identifies one rendering. Two equal requests produce the same
// bytes when the template is deterministic.
type Request struct {
	Invoice  invoice.Invoice      `json:"invoice"`
	Business invoice.BusinessInfo `json:"business"`
	Template invoice.Template     `json:"template"`
	// Format is "pdf" or "png".
	Format string `json:"format"`
	// Variant captures renderer settings that change the output.
	Variant string `json:"variant"`
}

// Key returns the cache key of r.
func Key(r Request) (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode cache key: %w", err)
	}
	sum := sha256.Sum256(data)
	return keyPrefix + r.Format + ":" + hex.EncodeToString(sum[:]), nil
}

// Cache is a best-effort artifact cache; Redis failures are logged and
// treated as misses.
type Cache struct {
	client kv
	ttl    time.Duration
	logger *zap.Logger
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*Cache, *redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewWithClient(client, cfg.TTL, logger), client, nil
}

// NewWithClient wraps an existing client. The caller keeps ownership of it.
func NewWithClient(client kv, ttl time.Duration, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached bytes for key.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores data under key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, data []byte) error {
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// GetOrRender returns the cached rendering of r or calls render and caches
// its result. Non-deterministic renderings bypass the cache entirely.
func (c *Cache) GetOrRender(ctx context.Context, r Request, deterministic bool, render func() ([]byte, error)) ([]byte, bool, error) {
	if c == nil || !deterministic {
		data, err := render()
		return data, false, err
	}

	key, err := Key(r)
	if err != nil {
		return nil, false, err
	}
	if data, ok, err := c.Get(ctx, key); err != nil {
		c.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		c.logger.Debug("Cache hit", zap.String("key", key))
		return data, true, nil
	}

	data, err := render()
	if err != nil {
		return nil, false, err
	}
	if err := c.Set(ctx, key, data); err != nil {
		c.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
	return data, false, nil
}
