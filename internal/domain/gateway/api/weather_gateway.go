package api

import (
	"weather-dashboard/internal/domain/model/external"
)

// WeatherGateway defines the interface for weather provider API calls.
//
// Current conditions and forecast lookups are required calls for a dashboard
// refresh cycle; UV index and reverse geocoding are supplementary.
type WeatherGateway interface {
	// CurrentByCity gets current conditions for a place name
	CurrentByCity(city string) (*external.CurrentWeatherResponse, error)

	// CurrentByCoordinates gets current conditions for a coordinate pair
	CurrentByCoordinates(lat, lon float64) (*external.CurrentWeatherResponse, error)

	// ForecastByCity gets the ~5-day, 3-hour-granularity forecast for a place name
	ForecastByCity(city string) (*external.ForecastResponse, error)

	// ForecastByCoordinates gets the ~5-day forecast for a coordinate pair
	ForecastByCoordinates(lat, lon float64) (*external.ForecastResponse, error)

	// UVIndex gets the UV index value for a coordinate pair
	UVIndex(lat, lon float64) (float64, error)

	// ReverseGeocode resolves a coordinate pair to a display name.
	// An empty result set returns "" with a nil error.
	ReverseGeocode(lat, lon float64) (string, error)
}
