package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eventdeck/eventdeck/internal/model"
)

const (
	publicEventsKey = "events:published"

	// PublicEventsTTL bounds staleness of the public listing. Mutations
	// invalidate eagerly; the TTL is the backstop.
	PublicEventsTTL = 30 * time.Second
)

// Common cache errors.
var (
	ErrCacheMiss = errors.New("cache miss")
)

// GetPublicEvents retrieves the cached public listing.
// Returns ErrCacheMiss if not present.
func (c *Cache) GetPublicEvents(ctx context.Context) ([]*model.PublicEvent, error) {
	data, err := c.client.Get(ctx, publicEventsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var events []*model.PublicEvent
	if err := json.Unmarshal(data, &events); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		return nil, ErrCacheMiss
	}

	return events, nil
}

// SetPublicEvents stores the public listing.
func (c *Cache) SetPublicEvents(ctx context.Context, events []*model.PublicEvent) error {
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("marshal public events: %w", err)
	}

	if err := c.client.Set(ctx, publicEventsKey, data, PublicEventsTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache public events: %w", err)
	}

	return nil
}

// InvalidatePublicEvents drops the cached public listing.
// Called after any event mutation.
func (c *Cache) InvalidatePublicEvents(ctx context.Context) error {
	if err := c.client.Del(ctx, publicEventsKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate public events: %w", err)
	}
	return nil
}
