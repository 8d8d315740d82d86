package dashboard

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"weather-dashboard/internal/domain/entity"
	"weather-dashboard/internal/domain/forecast"
	"weather-dashboard/internal/domain/gateway/api"
	"weather-dashboard/internal/domain/gateway/queue"
	"weather-dashboard/internal/domain/gateway/store"
	"weather-dashboard/internal/domain/model"
	"weather-dashboard/internal/domain/model/external"
	"weather-dashboard/internal/domain/weather"
	"weather-dashboard/pkg/log"
	"weather-dashboard/pkg/util/numberutils"
)

const (
	DefaultMapLayer = "precipitation_new"
	DefaultMapZoom  = 6
	MinMapZoom      = 3
	MaxMapZoom      = 10
)

// mapLayers are the tile layers the provider serves.
var mapLayers = map[string]bool{
	"clouds_new":        true,
	"precipitation_new": true,
	"pressure_new":      true,
	"wind_new":          true,
	"temp_new":          true,
}

type dashboardUseCase struct {
	apiGateway      api.WeatherGateway
	locationGateway store.LocationGateway
	queueSender     queue.Sender
	queueName       string
	batchSize       int
	refreshInterval time.Duration
	mapBaseURL      string
	mapAPIKey       string

	mu           sync.Mutex
	coordinators map[string]*weather.Coordinator
}

func NewDashboardUseCase(queueName string, batchSize int, refreshInterval time.Duration, mapBaseURL string, mapAPIKey string, queueSender queue.Sender, apiGateway api.WeatherGateway, locationGateway store.LocationGateway) UseCase {
	return &dashboardUseCase{
		apiGateway:      apiGateway,
		locationGateway: locationGateway,
		queueSender:     queueSender,
		queueName:       queueName,
		batchSize:       batchSize,
		refreshInterval: refreshInterval,
		mapBaseURL:      mapBaseURL,
		mapAPIKey:       mapAPIKey,
		coordinators:    make(map[string]*weather.Coordinator),
	}
}

// coordinatorFor returns the running coordinator for a selector, starting a
// new one on first use. The first start runs a refresh cycle synchronously,
// so callers always see populated data or a populated error afterwards.
func (uc *dashboardUseCase) coordinatorFor(selector weather.Selector) (*weather.Coordinator, error) {
	if selector.Empty() {
		return nil, errors.New("a city name or a coordinate pair is required")
	}

	uc.mu.Lock()
	coordinator, ok := uc.coordinators[selector.Key()]
	uc.mu.Unlock()
	if ok {
		return coordinator, nil
	}

	coordinator = weather.NewCoordinator(uc.apiGateway, selector)
	if err := coordinator.Start(uc.refreshInterval); err != nil {
		return nil, fmt.Errorf("failed to start refresh for %s: %w", selector.Key(), err)
	}

	uc.mu.Lock()
	if existing, ok := uc.coordinators[selector.Key()]; ok {
		// another request raced us to the same place
		uc.mu.Unlock()
		coordinator.Stop()
		return existing, nil
	}
	uc.coordinators[selector.Key()] = coordinator
	uc.mu.Unlock()

	return coordinator, nil
}

// GetDashboard returns the full dashboard snapshot for a place
func (uc *dashboardUseCase) GetDashboard(selector weather.Selector) (*model.DashboardResponse, error) {
	coordinator, err := uc.coordinatorFor(selector)
	if err != nil {
		return nil, err
	}

	snapshot := coordinator.Snapshot()
	response := &model.DashboardResponse{
		Location: selector.Key(),
		Current:  snapshot.Current,
		UVIndex:  snapshot.UV,
		Forecast: snapshot.Forecast,
		Loading:  snapshot.Loading,
		Error:    snapshot.Error,
	}
	if !snapshot.UpdatedAt.IsZero() {
		response.UpdatedAt = snapshot.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return response, nil
}

// GetCurrent returns only the current conditions view of the snapshot
func (uc *dashboardUseCase) GetCurrent(selector weather.Selector) (*external.CurrentWeatherResponse, error) {
	coordinator, err := uc.coordinatorFor(selector)
	if err != nil {
		return nil, err
	}

	snapshot := coordinator.Snapshot()
	if snapshot.Current == nil {
		return nil, snapshotError(snapshot)
	}
	return snapshot.Current, nil
}

// GetForecast returns only the aggregated daily forecast of the snapshot
func (uc *dashboardUseCase) GetForecast(selector weather.Selector) ([]forecast.Daily, error) {
	coordinator, err := uc.coordinatorFor(selector)
	if err != nil {
		return nil, err
	}

	snapshot := coordinator.Snapshot()
	if snapshot.Forecast == nil {
		return nil, snapshotError(snapshot)
	}
	return snapshot.Forecast, nil
}

// GetCalendar returns a 42-cell month grid, weeks starting on Sunday, with
// the aggregated forecast merged in by calendar day.
func (uc *dashboardUseCase) GetCalendar(selector weather.Selector, year int, month int) (*model.CalendarResponse, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}

	coordinator, err := uc.coordinatorFor(selector)
	if err != nil {
		return nil, err
	}
	snapshot := coordinator.Snapshot()

	byDay := make(map[string]forecast.Daily, len(snapshot.Forecast))
	for _, daily := range snapshot.Forecast {
		byDay[daily.DayKey()] = daily
	}

	firstOfMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	gridStart := firstOfMonth.AddDate(0, 0, -int(firstOfMonth.Weekday()))

	days := make([]model.CalendarDay, 0, 42)
	for i := 0; i < 42; i++ {
		date := gridStart.AddDate(0, 0, i)
		cell := model.CalendarDay{
			Date:    date.Format("2006-01-02"),
			Day:     date.Day(),
			InMonth: date.Month() == time.Month(month),
		}
		if daily, ok := byDay[cell.Date]; ok {
			temp := int(math.Round((daily.TempMin + daily.TempMax) / 2))
			cell.Temp = &temp
			cell.Icon = daily.Condition.Icon
			cell.Description = daily.Condition.Description
			cell.Pop = daily.Pop
		}
		days = append(days, cell)
	}

	return &model.CalendarResponse{
		Year:  year,
		Month: month,
		Days:  days,
	}, nil
}

// GetMap returns a tile overlay description centered on the place. Unknown
// layers fall back to precipitation and the zoom is clamped to the range
// the provider serves.
func (uc *dashboardUseCase) GetMap(selector weather.Selector, layer string, zoom int) (*model.MapOverlayResponse, error) {
	coordinator, err := uc.coordinatorFor(selector)
	if err != nil {
		return nil, err
	}

	if !mapLayers[layer] {
		layer = DefaultMapLayer
	}
	if zoom == 0 {
		zoom = DefaultMapZoom
	}
	zoom = numberutils.ClampInt(zoom, MinMapZoom, MaxMapZoom)

	response := &model.MapOverlayResponse{
		Layer:   layer,
		Zoom:    zoom,
		TileURL: fmt.Sprintf("%s/%s/{z}/{x}/{y}.png?appid=%s", uc.mapBaseURL, layer, uc.mapAPIKey),
	}

	snapshot := coordinator.Snapshot()
	if snapshot.Current != nil {
		response.Center = &external.Coordinates{
			Lat: snapshot.Current.Coord.Lat,
			Lon: snapshot.Current.Coord.Lon,
		}
	}
	return response, nil
}

// Refresh forces an immediate refresh cycle for a place
func (uc *dashboardUseCase) Refresh(selector weather.Selector) error {
	coordinator, err := uc.coordinatorFor(selector)
	if err != nil {
		return err
	}
	coordinator.Refresh()
	return nil
}

// RefreshLocation forces a refresh cycle for a saved location
func (uc *dashboardUseCase) RefreshLocation(location entity.SavedLocation) error {
	return uc.Refresh(SelectorForLocation(location))
}

// EnqueueAllLocationsScheduled enqueues every saved location for refresh
func (uc *dashboardUseCase) EnqueueAllLocationsScheduled(requestID string) error {
	log.Info("Starting scheduled location refresh enqueue", zap.String("request_id", requestID))

	locations, err := uc.locationGateway.List()
	if err != nil {
		log.Error("Failed to list saved locations",
			zap.String("request_id", requestID),
			zap.Error(err))
		return fmt.Errorf("failed to list saved locations: %w", err)
	}

	totalEnqueued := 0
	totalFailed := 0

	for start := 0; start < len(locations); start += uc.batchSize {
		end := start + uc.batchSize
		if end > len(locations) {
			end = len(locations)
		}
		batch := locations[start:end]

		messages := make([]queue.BatchMessage, len(batch))
		for i, location := range batch {
			messages[i] = queue.BatchMessage{
				MessageID: fmt.Sprintf("scheduled-%s-location-%s", requestID, location.ID),
				Body:      location,
			}
		}

		result, err := uc.queueSender.SendMessageBatch(uc.queueName, messages)
		if err != nil {
			log.Warn("Failed to send refresh batch",
				zap.String("request_id", requestID),
				zap.Error(err))
			totalFailed += len(batch)
			continue
		}

		totalEnqueued += len(result.Successful)
		totalFailed += len(result.Failed)
		for _, failedID := range result.Failed {
			log.Warn("Failed to enqueue location for refresh",
				zap.String("request_id", requestID),
				zap.String("message_id", failedID))
		}
	}

	log.Info("Completed scheduled location refresh enqueue",
		zap.String("request_id", requestID),
		zap.Int("total_locations", len(locations)),
		zap.Int("enqueued", totalEnqueued),
		zap.Int("failed", totalFailed))
	return nil
}

// Stop halts every running refresh timer
func (uc *dashboardUseCase) Stop() {
	uc.mu.Lock()
	coordinators := uc.coordinators
	uc.coordinators = make(map[string]*weather.Coordinator)
	uc.mu.Unlock()

	for _, coordinator := range coordinators {
		coordinator.Stop()
	}
}

// SelectorForLocation builds the fetch selector for a saved location.
// Stored coordinates win over the place name.
func SelectorForLocation(location entity.SavedLocation) weather.Selector {
	selector := weather.Selector{City: location.Name}
	if location.Coordinates != nil {
		selector.Coords = &entity.Coordinates{
			Lat: location.Coordinates.Lat,
			Lon: location.Coordinates.Lon,
		}
	}
	return selector
}

// snapshotError explains why a snapshot view has no data yet.
func snapshotError(snapshot weather.Snapshot) error {
	if snapshot.Error != "" {
		return errors.New(snapshot.Error)
	}
	if snapshot.Loading {
		return errors.New("weather data is still loading")
	}
	return errors.New("no weather data available")
}
