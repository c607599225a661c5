package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/koios/plainly-mcp/internal/config"
	"github.com/koios/plainly-mcp/pkg/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Client publishes tool events over Redis pub/sub
type Client struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewClient creates a new Redis client and verifies the connection
func NewClient(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		PoolTimeout:  30 * time.Second,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Connected to Redis",
		zap.String("addr", cfg.Addr),
		zap.String("channel", cfg.Channel))

	return &Client{
		client:  rdb,
		channel: cfg.Channel,
		logger:  logger,
	}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.client.Close()
}

// PublishToolEvent publishes a tool event to the configured channel
func (c *Client) PublishToolEvent(ctx context.Context, event *models.ToolEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal tool event: %w", err)
	}

	if err := c.client.Publish(ctx, c.channel, body).Err(); err != nil {
		return fmt.Errorf("failed to publish to Redis channel %s: %w", c.channel, err)
	}

	c.logger.Debug("Published tool event",
		zap.String("channel", c.channel),
		zap.String("tool", event.Tool),
		zap.String("event_id", event.ID),
		zap.Bool("success", event.Success))

	return nil
}

// IsHealthy checks if Redis connection is healthy
func (c *Client) IsHealthy(ctx context.Context) bool {
	return c.client.Ping(ctx).Err() == nil
}
