package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/pokerledger/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// EventsChannel returns the pub/sub channel ledger entries are published on
func EventsChannel(sessionID string) string {
	return fmt.Sprintf("pokerledger:events:%s", sessionID)
}

// PublishedEvent is the JSON message published for every entry
type PublishedEvent struct {
	SessionID string           `json:"sessionId"`
	ChipValue decimal.Decimal  `json:"chipValue"`
	Entry     *models.LogEntry `json:"entry"`
}

// RedisPublisherConfig holds configuration for the publisher sink
type RedisPublisherConfig struct {
	// Redis client
	RedisClient *redis.Client
}

// RedisPublisherSink publishes entries for downstream push and stat consumers
type RedisPublisherSink struct {
	client *redis.Client
}

// NewRedisPublisher creates a publisher sink
func NewRedisPublisher(cfg *RedisPublisherConfig) (*RedisPublisherSink, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	return &RedisPublisherSink{client: cfg.RedisClient}, nil
}

// Name implements Sink
func (r *RedisPublisherSink) Name() string {
	return "redis_publisher"
}

// Send implements Sink
func (r *RedisPublisherSink) Send(ctx context.Context, input *NotifyInput) error {
	payload, err := json.Marshal(&PublishedEvent{
		SessionID: input.SessionID,
		ChipValue: input.ChipValue,
		Entry:     input.Entry,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := r.client.Publish(ctx, EventsChannel(input.SessionID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
