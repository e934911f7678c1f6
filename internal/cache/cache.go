// Package cache keeps flight-search responses in Valkey/Redis as raw JSON,
// so cache hits skip both the catalog query and re-marshaling.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	TTL      time.Duration
}

// Enabled reports whether a cache address was configured.
func (cfg Config) Enabled() bool {
	return cfg.Addr != ""
}

type Client struct {
	client *redis.Client
	ttl    time.Duration
}

func New(cfg Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to cache: %w", err)
	}

	return &Client{client: rdb, ttl: cfg.TTL}, nil
}

// SearchKey builds the cache key for one route and date.
func SearchKey(source, destination, date string) string {
	return "search:" + strings.ToLower(source) + ":" + strings.ToLower(destination) + ":" + date
}

// GetSearchResultsRaw returns the cached raw JSON for a search key, or an
// error on a miss.
func (c *Client) GetSearchResultsRaw(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("cache miss for %s", key)
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}
	return data, nil
}

// SetSearchResults stores a search response under key with the configured
// TTL. Failures are returned for logging but are never fatal to the request.
func (c *Client) SetSearchResults(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache store error: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
