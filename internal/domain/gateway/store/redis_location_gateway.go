package store

import (
	"context"
	"fmt"
	"sort"

	"weather-dashboard/internal/domain/entity"
	"weather-dashboard/pkg/redis"
)

const locationCacheName = "location"

// redisLocationGateway keeps saved locations as JSON values in redis under
// the "location" namespace. Entries never expire; removal is explicit.
type redisLocationGateway struct {
	cache *redis.Cache
	ctx   context.Context
}

// NewRedisLocationGateway creates a LocationGateway backed by the given
// redis client.
func NewRedisLocationGateway(client *redis.Client) LocationGateway {
	opts := redis.NewCacheOptions().
		WithCacheName(locationCacheName).
		WithTTL(0)

	return &redisLocationGateway{
		cache: redis.NewCache(client, opts),
		ctx:   context.Background(),
	}
}

func (g *redisLocationGateway) List() ([]entity.SavedLocation, error) {
	ids, err := g.cache.Keys(g.ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved locations: %w", err)
	}

	locations := make([]entity.SavedLocation, 0, len(ids))
	for _, id := range ids {
		var location entity.SavedLocation
		if err := g.cache.Get(g.ctx, id, &location); err != nil {
			return nil, fmt.Errorf("failed to read saved location %s: %w", id, err)
		}
		if location.ID == "" {
			// expired between the key scan and the read
			continue
		}
		locations = append(locations, location)
	}

	sort.Slice(locations, func(i, j int) bool {
		return locations[i].AddedAt < locations[j].AddedAt
	})
	return locations, nil
}

func (g *redisLocationGateway) FindByID(id string) (*entity.SavedLocation, error) {
	var location entity.SavedLocation
	if err := g.cache.Get(g.ctx, id, &location); err != nil {
		return nil, fmt.Errorf("failed to read saved location %s: %w", id, err)
	}
	if location.ID == "" {
		return nil, nil
	}
	return &location, nil
}

func (g *redisLocationGateway) Save(location entity.SavedLocation) error {
	if err := g.cache.SetWithTTL(g.ctx, location.ID, location, 0); err != nil {
		return fmt.Errorf("failed to save location %s: %w", location.ID, err)
	}
	return nil
}

func (g *redisLocationGateway) Remove(id string) error {
	if err := g.cache.Delete(g.ctx, id); err != nil {
		return fmt.Errorf("failed to remove saved location %s: %w", id, err)
	}
	return nil
}
