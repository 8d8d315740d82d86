package processor

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"weather-dashboard/internal/domain/entity"
	"weather-dashboard/internal/domain/usecase/dashboard"
	"weather-dashboard/pkg/log"
)

type RefreshProcessor struct {
	dashboardUseCase dashboard.UseCase
}

func NewRefreshProcessor(dashboardUseCase dashboard.UseCase) *RefreshProcessor {
	return &RefreshProcessor{
		dashboardUseCase: dashboardUseCase,
	}
}

// HandleMessage implements the sqs.Handler interface
func (p *RefreshProcessor) HandleMessage(msg *types.Message) error {
	if msg == nil || msg.Body == nil {
		return fmt.Errorf("received nil message or message body")
	}

	log.Infof("Processing refresh message: %s", *msg.MessageId)

	var location entity.SavedLocation
	if err := json.Unmarshal([]byte(*msg.Body), &location); err != nil {
		return fmt.Errorf("failed to unmarshal message body: %w", err)
	}

	if err := p.dashboardUseCase.RefreshLocation(location); err != nil {
		return fmt.Errorf("failed to refresh location %s: %w", location.Name, err)
	}

	log.Infof("Successfully refreshed weather for location: %s", location.Name)
	return nil
}
