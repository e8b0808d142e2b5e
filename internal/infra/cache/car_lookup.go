package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func carCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("car:%s", id.String())
}

// CachedCarLookup is a read-through Redis cache in front of the car catalog.
// Cache failures fall back to the wrapped lookup.
type CachedCarLookup struct {
	next   shared.CarLookup
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedCarLookup(next shared.CarLookup, client *redis.Client, ttl time.Duration) *CachedCarLookup {
	return &CachedCarLookup{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: slog.Default(),
	}
}

func (c *CachedCarLookup) CarByID(ctx context.Context, id uuid.UUID) (*shared.CarSnapshot, error) {
	key := carCacheKey(id)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var snap shared.CarSnapshot
		if uerr := json.Unmarshal(data, &snap); uerr == nil {
			return &snap, nil
		}
		c.logger.WarnContext(ctx, "failed to decode cached car", "car_id", id.String())
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "car cache read failed", "car_id", id.String(), "error", err.Error())
	}

	snap, err := c.next.CarByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, merr := json.Marshal(snap); merr == nil {
		if serr := c.client.Set(ctx, key, data, c.ttl).Err(); serr != nil {
			c.logger.WarnContext(ctx, "car cache write failed", "car_id", id.String(), "error", serr.Error())
		}
	}
	return snap, nil
}
