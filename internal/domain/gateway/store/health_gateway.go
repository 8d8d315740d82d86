package store

import (
	"context"

	"weather-dashboard/internal/domain/model"
	"weather-dashboard/pkg/redis"
)

// HealthGateway reports the health of the saved-locations store.
type HealthGateway interface {
	Health() model.ComponentHealthStatus
}

type redisHealthGateway struct {
	client *redis.Client
}

func NewRedisHealthGateway(client *redis.Client) HealthGateway {
	return &redisHealthGateway{client: client}
}

func (g *redisHealthGateway) Health() model.ComponentHealthStatus {
	if err := g.client.Ping(context.Background()); err != nil {
		return model.ComponentHealthStatus{
			Status:  model.StatusDown,
			Details: map[string]string{"error": err.Error()},
		}
	}

	return model.ComponentHealthStatus{
		Status: model.StatusUp,
		Details: map[string]string{
			"host": g.client.GetConfig().Host,
		},
	}
}
