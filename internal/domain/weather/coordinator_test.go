package weather

import (
	"errors"
	"sync"
	"testing"
	"time"

	"weather-dashboard/internal/domain/entity"
	"weather-dashboard/internal/domain/model/external"
)

type fakeGateway struct {
	mu sync.Mutex

	currentByCityFn   func(city string) (*external.CurrentWeatherResponse, error)
	currentByCoordsFn func(lat, lon float64) (*external.CurrentWeatherResponse, error)
	forecastByCityFn  func(city string) (*external.ForecastResponse, error)
	forecastByCoordFn func(lat, lon float64) (*external.ForecastResponse, error)
	uvIndexFn         func(lat, lon float64) (float64, error)

	cityCalls  int
	coordCalls int
	uvCoords   []float64
}

func (f *fakeGateway) CurrentByCity(city string) (*external.CurrentWeatherResponse, error) {
	f.mu.Lock()
	f.cityCalls++
	f.mu.Unlock()
	return f.currentByCityFn(city)
}

func (f *fakeGateway) CurrentByCoordinates(lat, lon float64) (*external.CurrentWeatherResponse, error) {
	f.mu.Lock()
	f.coordCalls++
	f.mu.Unlock()
	return f.currentByCoordsFn(lat, lon)
}

func (f *fakeGateway) ForecastByCity(city string) (*external.ForecastResponse, error) {
	return f.forecastByCityFn(city)
}

func (f *fakeGateway) ForecastByCoordinates(lat, lon float64) (*external.ForecastResponse, error) {
	return f.forecastByCoordFn(lat, lon)
}

func (f *fakeGateway) UVIndex(lat, lon float64) (float64, error) {
	f.mu.Lock()
	f.uvCoords = []float64{lat, lon}
	f.mu.Unlock()
	if f.uvIndexFn != nil {
		return f.uvIndexFn(lat, lon)
	}
	return 4.2, nil
}

func (f *fakeGateway) ReverseGeocode(lat, lon float64) (string, error) {
	return "", nil
}

func (f *fakeGateway) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cityCalls + f.coordCalls
}

func current(name string, lat, lon float64) *external.CurrentWeatherResponse {
	return &external.CurrentWeatherResponse{
		Name:    name,
		Coord:   external.Coordinates{Lat: lat, Lon: lon},
		Weather: []external.WeatherCondition{{ID: 800, Main: "Clear"}},
	}
}

func forecastResponse(dt int64) *external.ForecastResponse {
	return &external.ForecastResponse{
		List: []external.ForecastItem{{
			Dt:      dt,
			Main:    external.ForecastMain{Temp: 10, TempMin: 8, TempMax: 12, Humidity: 50},
			Weather: []external.WeatherCondition{{ID: 500, Icon: "10d"}},
			Wind:    external.ForecastWind{Speed: 3},
			Pop:     0.3,
		}},
	}
}

func TestCoordinator_CoordinateSelectorSkipsCityLookup(t *testing.T) {
	gateway := &fakeGateway{
		currentByCoordsFn: func(lat, lon float64) (*external.CurrentWeatherResponse, error) {
			return current("Here", lat, lon), nil
		},
		forecastByCoordFn: func(lat, lon float64) (*external.ForecastResponse, error) {
			return forecastResponse(time.Now().Unix()), nil
		},
	}

	coordinator := NewCoordinator(gateway, Selector{
		City:   "ignored",
		Coords: &entity.Coordinates{Lat: 51.5, Lon: -0.12},
	})
	coordinator.Refresh()

	if gateway.cityCalls != 0 {
		t.Errorf("expected no city lookups, got %d", gateway.cityCalls)
	}
	if gateway.coordCalls != 1 {
		t.Errorf("expected 1 coordinate lookup, got %d", gateway.coordCalls)
	}

	snapshot := coordinator.Snapshot()
	if snapshot.Current == nil || snapshot.Current.Name != "Here" {
		t.Fatalf("expected current conditions to be published, got %+v", snapshot.Current)
	}
	if snapshot.UV == nil || *snapshot.UV != 4.2 {
		t.Errorf("expected uv 4.2, got %v", snapshot.UV)
	}
	if len(snapshot.Forecast) != 1 {
		t.Errorf("expected 1 forecast day, got %d", len(snapshot.Forecast))
	}
	if snapshot.Loading {
		t.Error("expected loading to be cleared")
	}
	if snapshot.Error != "" {
		t.Errorf("expected no error, got %q", snapshot.Error)
	}
}

func TestCoordinator_CitySelectorUsesEchoedCoordinatesForUV(t *testing.T) {
	gateway := &fakeGateway{
		currentByCityFn: func(city string) (*external.CurrentWeatherResponse, error) {
			return current(city, -23.55, -46.63), nil
		},
		forecastByCityFn: func(city string) (*external.ForecastResponse, error) {
			return forecastResponse(time.Now().Unix()), nil
		},
	}

	coordinator := NewCoordinator(gateway, Selector{City: "Sao Paulo"})
	coordinator.Refresh()

	if gateway.uvCoords == nil {
		t.Fatal("expected a uv lookup")
	}
	if gateway.uvCoords[0] != -23.55 || gateway.uvCoords[1] != -46.63 {
		t.Errorf("expected uv lookup at echoed coordinates, got %v", gateway.uvCoords)
	}
}

func TestCoordinator_RequiredFailureKeepsPriorData(t *testing.T) {
	failForecast := false
	gateway := &fakeGateway{
		currentByCityFn: func(city string) (*external.CurrentWeatherResponse, error) {
			return current(city, 1, 2), nil
		},
		forecastByCityFn: func(city string) (*external.ForecastResponse, error) {
			if failForecast {
				return nil, errors.New("forecast unavailable")
			}
			return forecastResponse(time.Now().Unix()), nil
		},
	}

	coordinator := NewCoordinator(gateway, Selector{City: "Lisbon"})
	coordinator.Refresh()

	failForecast = true
	coordinator.Refresh()

	snapshot := coordinator.Snapshot()
	if snapshot.Error == "" {
		t.Fatal("expected an error after the failed cycle")
	}
	if snapshot.Loading {
		t.Error("expected loading to be cleared after the failed cycle")
	}
	if snapshot.Current == nil {
		t.Error("expected prior current conditions to survive the failed cycle")
	}
	if len(snapshot.Forecast) != 1 {
		t.Errorf("expected prior forecast to survive the failed cycle, got %d days", len(snapshot.Forecast))
	}
}

func TestCoordinator_UVFailureIsNotFatal(t *testing.T) {
	gateway := &fakeGateway{
		currentByCityFn: func(city string) (*external.CurrentWeatherResponse, error) {
			return current(city, 1, 2), nil
		},
		forecastByCityFn: func(city string) (*external.ForecastResponse, error) {
			return forecastResponse(time.Now().Unix()), nil
		},
		uvIndexFn: func(lat, lon float64) (float64, error) {
			return 0, errors.New("uv endpoint down")
		},
	}

	coordinator := NewCoordinator(gateway, Selector{City: "Oslo"})
	coordinator.Refresh()

	snapshot := coordinator.Snapshot()
	if snapshot.Error != "" {
		t.Errorf("expected no error, got %q", snapshot.Error)
	}
	if snapshot.UV != nil {
		t.Errorf("expected uv to stay unset, got %v", *snapshot.UV)
	}
	if snapshot.Current == nil || len(snapshot.Forecast) != 1 {
		t.Error("expected the rest of the cycle data to be published")
	}
}

func TestCoordinator_EmptySelectorIsNoOp(t *testing.T) {
	gateway := &fakeGateway{}

	coordinator := NewCoordinator(gateway, Selector{})
	if err := coordinator.Start(time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	coordinator.Refresh()

	if gateway.cityCalls != 0 || gateway.coordCalls != 0 {
		t.Error("expected no provider calls for an empty selector")
	}
}

func TestCoordinator_StopPreventsInFlightPublish(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	gateway := &fakeGateway{
		currentByCityFn: func(city string) (*external.CurrentWeatherResponse, error) {
			close(entered)
			<-release
			return current(city, 1, 2), nil
		},
		forecastByCityFn: func(city string) (*external.ForecastResponse, error) {
			return forecastResponse(time.Now().Unix()), nil
		},
	}

	coordinator := NewCoordinator(gateway, Selector{City: "Madrid"})

	done := make(chan struct{})
	go func() {
		coordinator.Refresh()
		close(done)
	}()

	<-entered
	coordinator.Stop()
	close(release)
	<-done

	snapshot := coordinator.Snapshot()
	if snapshot.Current != nil {
		t.Error("expected no data published after stop")
	}
}

func TestCoordinator_NonPositiveIntervalDisablesAutoRefresh(t *testing.T) {
	gateway := &fakeGateway{
		currentByCityFn: func(city string) (*external.CurrentWeatherResponse, error) {
			return current(city, 1, 2), nil
		},
		forecastByCityFn: func(city string) (*external.ForecastResponse, error) {
			return forecastResponse(time.Now().Unix()), nil
		},
	}

	coordinator := NewCoordinator(gateway, Selector{City: "Helsinki"})
	if err := coordinator.Start(0); err != nil {
		t.Fatalf("expected interval 0 to disable auto-refresh, got error: %v", err)
	}
	defer coordinator.Stop()

	if gateway.calls() != 1 {
		t.Fatalf("expected exactly one immediate fetch, got %d", gateway.calls())
	}
	if coordinator.Snapshot().Current == nil {
		t.Fatal("expected the immediate cycle to publish data")
	}

	time.Sleep(50 * time.Millisecond)
	if gateway.calls() != 1 {
		t.Errorf("expected no timer fetches with interval 0, got %d", gateway.calls())
	}
}

func TestCoordinator_StopHaltsTimerFetches(t *testing.T) {
	gateway := &fakeGateway{
		currentByCityFn: func(city string) (*external.CurrentWeatherResponse, error) {
			return current(city, 1, 2), nil
		},
		forecastByCityFn: func(city string) (*external.ForecastResponse, error) {
			return forecastResponse(time.Now().Unix()), nil
		},
	}

	coordinator := NewCoordinator(gateway, Selector{City: "Tallinn"})
	if err := coordinator.Start(10 * time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// let the timer fire at least once beyond the immediate cycle
	deadline := time.Now().Add(time.Second)
	for gateway.calls() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if gateway.calls() < 2 {
		t.Fatal("expected the timer to trigger refresh cycles")
	}

	coordinator.Stop()
	// let a cycle that was already running drain before sampling the count
	time.Sleep(50 * time.Millisecond)
	stopped := gateway.calls()

	time.Sleep(100 * time.Millisecond)
	if got := gateway.calls(); got != stopped {
		t.Errorf("expected no fetches after stop, call count grew from %d to %d", stopped, got)
	}
}

func TestCoordinator_LastStartedCycleWins(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	first := true

	gateway := &fakeGateway{
		currentByCityFn: func(city string) (*external.CurrentWeatherResponse, error) {
			if first {
				first = false
				close(entered)
				<-release
				return current("stale", 1, 2), nil
			}
			return current("fresh", 1, 2), nil
		},
		forecastByCityFn: func(city string) (*external.ForecastResponse, error) {
			return forecastResponse(time.Now().Unix()), nil
		},
	}

	coordinator := NewCoordinator(gateway, Selector{City: "Berlin"})

	done := make(chan struct{})
	go func() {
		coordinator.Refresh()
		close(done)
	}()

	<-entered
	coordinator.Refresh()
	close(release)
	<-done

	snapshot := coordinator.Snapshot()
	if snapshot.Current == nil || snapshot.Current.Name != "fresh" {
		t.Fatalf("expected the later cycle's data to win, got %+v", snapshot.Current)
	}
	if snapshot.Loading {
		t.Error("expected loading to be cleared")
	}
}
