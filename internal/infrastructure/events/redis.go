package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/smartmeal/planner/internal/domain/shared"
)

// Envelope is the wire form of an event published to Redis
type Envelope struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// NewEnvelope wraps event for publication
func NewEnvelope(event shared.DomainEvent) (Envelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to marshal %s: %w", event.EventName(), err)
	}
	return Envelope{
		ID:         uuid.NewString(),
		Name:       event.EventName(),
		OccurredAt: event.OccurredAt().UTC(),
		Payload:    payload,
	}, nil
}

// RedisHandler publishes every event as an Envelope on channel
func RedisHandler(client redis.UniversalClient, channel string) Handler {
	return func(ctx context.Context, event shared.DomainEvent) error {
		env, err := NewEnvelope(event)
		if err != nil {
			return err
		}
		data, err := json.Marshal(env)
		if err != nil {
			return fmt.Errorf("failed to marshal envelope: %w", err)
		}
		if err := client.Publish(ctx, channel, data).Err(); err != nil {
			return fmt.Errorf("failed to publish to %s: %w", channel, err)
		}
		return nil
	}
}
