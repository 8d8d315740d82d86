package dashboard

import (
	"weather-dashboard/internal/domain/entity"
	"weather-dashboard/internal/domain/forecast"
	"weather-dashboard/internal/domain/model"
	"weather-dashboard/internal/domain/model/external"
	"weather-dashboard/internal/domain/weather"
)

type UseCase interface {
	// GetDashboard returns the full dashboard snapshot for a place
	GetDashboard(selector weather.Selector) (*model.DashboardResponse, error)

	// GetCurrent returns only the current conditions view of the snapshot
	GetCurrent(selector weather.Selector) (*external.CurrentWeatherResponse, error)

	// GetForecast returns only the aggregated daily forecast of the snapshot
	GetForecast(selector weather.Selector) ([]forecast.Daily, error)

	// GetCalendar returns a month grid with forecast days merged in
	GetCalendar(selector weather.Selector, year int, month int) (*model.CalendarResponse, error)

	// GetMap returns a tile overlay description centered on the place
	GetMap(selector weather.Selector, layer string, zoom int) (*model.MapOverlayResponse, error)

	// Refresh forces an immediate refresh cycle for a place
	Refresh(selector weather.Selector) error

	// RefreshLocation forces a refresh cycle for a saved location
	RefreshLocation(location entity.SavedLocation) error

	// EnqueueAllLocationsScheduled enqueues every saved location for refresh
	EnqueueAllLocationsScheduled(requestID string) error

	// Stop halts every running refresh timer
	Stop()
}
