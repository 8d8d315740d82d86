package api

import (
	"fmt"
	"strconv"

	"github.com/sony/gobreaker"

	"weather-dashboard/internal/domain/model/external"
	"weather-dashboard/pkg/http"
)

// GatewayConfig holds the provider endpoints and credential for the gateway.
type GatewayConfig struct {
	// DataBaseURL serves current conditions, forecast and UV index
	DataBaseURL string
	// GeoBaseURL serves reverse geocoding
	GeoBaseURL string
	// APIKey is the provider credential appended to every request
	APIKey string
	// Units is the measurement system for temperature and wind (e.g. "metric")
	Units string
}

// weatherGatewayImpl implements the WeatherGateway interface against the
// OpenWeatherMap REST API.
type weatherGatewayImpl struct {
	dataClient *http.Client
	geoClient  *http.Client
	apiKey     string
	units      string
	uvBreaker  *gobreaker.CircuitBreaker
}

// NewWeatherGateway creates a new WeatherGateway with pooled HTTP clients.
// UV lookups run behind a circuit breaker: UV is supplementary data and a
// flapping UV endpoint must not be hammered on every refresh cycle.
func NewWeatherGateway(config GatewayConfig, clientOptions http.ClientOptions) WeatherGateway {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweathermap-uv",
		MaxRequests: 1,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &weatherGatewayImpl{
		dataClient: http.NewHttpClient(config.DataBaseURL, clientOptions),
		geoClient:  http.NewHttpClient(config.GeoBaseURL, clientOptions),
		apiKey:     config.APIKey,
		units:      config.Units,
		uvBreaker:  breaker,
	}
}

// CurrentByCity gets current conditions for a place name
func (w *weatherGatewayImpl) CurrentByCity(city string) (*external.CurrentWeatherResponse, error) {
	return w.fetchCurrent(map[string]string{"q": city})
}

// CurrentByCoordinates gets current conditions for a coordinate pair
func (w *weatherGatewayImpl) CurrentByCoordinates(lat, lon float64) (*external.CurrentWeatherResponse, error) {
	return w.fetchCurrent(coordParams(lat, lon))
}

func (w *weatherGatewayImpl) fetchCurrent(params map[string]string) (*external.CurrentWeatherResponse, error) {
	params["units"] = w.units
	params["appid"] = w.apiKey

	successResp, errResp, status, err := w.dataClient.Request().
		WithMethod(http.GET).
		WithPath("/weather").
		WithQueryParams(params).
		WithSuccessResp(&external.CurrentWeatherResponse{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()

	if err != nil {
		return nil, providerError("current conditions", errResp, status, err)
	}

	response := successResp.(*external.CurrentWeatherResponse)
	if len(response.Weather) == 0 {
		return nil, fmt.Errorf("malformed current conditions payload: missing weather block")
	}
	return response, nil
}

// ForecastByCity gets the ~5-day forecast for a place name
func (w *weatherGatewayImpl) ForecastByCity(city string) (*external.ForecastResponse, error) {
	return w.fetchForecast(map[string]string{"q": city})
}

// ForecastByCoordinates gets the ~5-day forecast for a coordinate pair
func (w *weatherGatewayImpl) ForecastByCoordinates(lat, lon float64) (*external.ForecastResponse, error) {
	return w.fetchForecast(coordParams(lat, lon))
}

func (w *weatherGatewayImpl) fetchForecast(params map[string]string) (*external.ForecastResponse, error) {
	params["units"] = w.units
	params["appid"] = w.apiKey

	successResp, errResp, status, err := w.dataClient.Request().
		WithMethod(http.GET).
		WithPath("/forecast").
		WithQueryParams(params).
		WithSuccessResp(&external.ForecastResponse{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()

	if err != nil {
		return nil, providerError("forecast", errResp, status, err)
	}

	response := successResp.(*external.ForecastResponse)
	if len(response.List) == 0 {
		return nil, fmt.Errorf("malformed forecast payload: empty sample list")
	}
	return response, nil
}

// UVIndex gets the UV index value for a coordinate pair
func (w *weatherGatewayImpl) UVIndex(lat, lon float64) (float64, error) {
	result, err := w.uvBreaker.Execute(func() (interface{}, error) {
		params := coordParams(lat, lon)
		params["appid"] = w.apiKey

		successResp, errResp, status, err := w.dataClient.Request().
			WithMethod(http.GET).
			WithPath("/uvi").
			WithQueryParams(params).
			WithSuccessResp(&external.UVIndexResponse{}).
			WithErrorResp(&external.APIErrorResponse{}).
			Execute()

		if err != nil {
			return nil, providerError("uv index", errResp, status, err)
		}

		return successResp.(*external.UVIndexResponse).Value, nil
	})
	if err != nil {
		return 0, err
	}

	return result.(float64), nil
}

// ReverseGeocode resolves a coordinate pair to a display name
func (w *weatherGatewayImpl) ReverseGeocode(lat, lon float64) (string, error) {
	params := coordParams(lat, lon)
	params["limit"] = "1"
	params["appid"] = w.apiKey

	successResp, errResp, status, err := w.geoClient.Request().
		WithMethod(http.GET).
		WithPath("/reverse").
		WithQueryParams(params).
		WithSuccessResp(&[]external.ReverseGeocodeResult{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()

	if err != nil {
		return "", providerError("reverse geocoding", errResp, status, err)
	}

	results := *successResp.(*[]external.ReverseGeocodeResult)
	if len(results) == 0 {
		return "", nil
	}
	return results[0].Name, nil
}

// providerError builds a cycle-facing error from an API failure. The provider
// message is preferred when present; the HTTP status is always carried.
func providerError(operation string, errResp any, status int, err error) error {
	if errResp != nil {
		if apiErr, ok := errResp.(*external.APIErrorResponse); ok && apiErr.Message != "" {
			return fmt.Errorf("%s request failed: %s (status %d)", operation, apiErr.Message, status)
		}
	}
	return fmt.Errorf("%s request failed: %w", operation, err)
}

func coordParams(lat, lon float64) map[string]string {
	return map[string]string{
		"lat": strconv.FormatFloat(lat, 'f', -1, 64),
		"lon": strconv.FormatFloat(lon, 'f', -1, 64),
	}
}
