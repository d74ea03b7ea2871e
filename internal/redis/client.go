package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Client wraps a Redis connection for session presence tracking.
type Client struct {
	rdb *goredis.Client
}

// NewClient creates a Redis client from a URL and verifies the connection.
func NewClient(redisURL string) (*Client, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	rdb := goredis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return &Client{rdb: rdb}, nil
}

// Ping checks the Redis connection.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

const (
	presencePrefix = "presence:"

	// PresenceTTL must outlive the gateway ping interval, which refreshes
	// the key; a session whose process dies expires on its own.
	PresenceTTL = 2 * time.Minute
)

// SetPresence marks a session as online with a TTL.
func (c *Client) SetPresence(ctx context.Context, sessionID string) error {
	return c.rdb.Set(ctx, presencePrefix+sessionID, 1, PresenceTTL).Err()
}

// RefreshPresence extends a session's presence TTL.
func (c *Client) RefreshPresence(ctx context.Context, sessionID string) error {
	return c.rdb.Expire(ctx, presencePrefix+sessionID, PresenceTTL).Err()
}

// ClearPresence removes a session's presence key.
func (c *Client) ClearPresence(ctx context.Context, sessionID string) error {
	return c.rdb.Del(ctx, presencePrefix+sessionID).Err()
}

// OnlineCount returns the number of sessions with a live presence key.
func (c *Client) OnlineCount(ctx context.Context) (int64, error) {
	var count int64
	iter := c.rdb.Scan(ctx, 0, presencePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		count++
	}
	return count, iter.Err()
}
