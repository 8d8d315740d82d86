package health

import (
	"weather-dashboard/internal/domain/gateway/store"
	"weather-dashboard/internal/domain/model"
)

type healthUseCase struct {
	storeGateway store.HealthGateway
}

func NewHealthUseCase(storeGateway store.HealthGateway) UseCase {
	return &healthUseCase{
		storeGateway: storeGateway,
	}
}

func (useCase *healthUseCase) CheckHealth() model.HealthResponse {
	storeHealth := useCase.storeGateway.Health()

	overallStatus := model.StatusUp
	if storeHealth.Status != model.StatusUp {
		overallStatus = model.StatusDown
	}

	return model.HealthResponse{
		Status: overallStatus,
		Store:  storeHealth,
	}
}
