package dashboard

import (
	"testing"
	"time"

	"weather-dashboard/internal/domain/entity"
	"weather-dashboard/internal/domain/gateway/queue"
	"weather-dashboard/internal/domain/model/external"
	"weather-dashboard/internal/domain/weather"
)

type fakeWeatherAPI struct{}

func (f *fakeWeatherAPI) CurrentByCity(city string) (*external.CurrentWeatherResponse, error) {
	return &external.CurrentWeatherResponse{
		Name:    city,
		Coord:   external.Coordinates{Lat: 59.91, Lon: 10.75},
		Weather: []external.WeatherCondition{{ID: 800, Icon: "01d"}},
		Main:    external.CurrentMain{Temp: 12.3},
	}, nil
}

func (f *fakeWeatherAPI) CurrentByCoordinates(lat, lon float64) (*external.CurrentWeatherResponse, error) {
	return f.CurrentByCity("ByCoords")
}

func (f *fakeWeatherAPI) ForecastByCity(city string) (*external.ForecastResponse, error) {
	return &external.ForecastResponse{
		List: []external.ForecastItem{{
			Dt:      time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC).Unix(),
			Main:    external.ForecastMain{Temp: 10, TempMin: 8, TempMax: 13, Humidity: 55},
			Weather: []external.WeatherCondition{{ID: 500, Icon: "10d", Description: "light rain"}},
			Pop:     0.6,
		}},
	}, nil
}

func (f *fakeWeatherAPI) ForecastByCoordinates(lat, lon float64) (*external.ForecastResponse, error) {
	return f.ForecastByCity("ByCoords")
}

func (f *fakeWeatherAPI) UVIndex(lat, lon float64) (float64, error) {
	return 3.1, nil
}

func (f *fakeWeatherAPI) ReverseGeocode(lat, lon float64) (string, error) {
	return "", nil
}

type fakeLocationStore struct {
	locations []entity.SavedLocation
}

func (s *fakeLocationStore) List() ([]entity.SavedLocation, error) {
	return s.locations, nil
}

func (s *fakeLocationStore) FindByID(id string) (*entity.SavedLocation, error) {
	return nil, nil
}

func (s *fakeLocationStore) Save(location entity.SavedLocation) error {
	s.locations = append(s.locations, location)
	return nil
}

func (s *fakeLocationStore) Remove(id string) error {
	return nil
}

type fakeQueueSender struct {
	batches [][]queue.BatchMessage
}

func (f *fakeQueueSender) SendMessage(queueName string, body any) error {
	return nil
}

func (f *fakeQueueSender) SendMessageBatch(queueName string, messages []queue.BatchMessage) (*queue.BatchResult, error) {
	f.batches = append(f.batches, messages)
	result := &queue.BatchResult{}
	for _, msg := range messages {
		result.Successful = append(result.Successful, msg.MessageID)
	}
	return result, nil
}

func newTestUseCase(t *testing.T, store *fakeLocationStore, sender *fakeQueueSender) UseCase {
	t.Helper()
	useCase := NewDashboardUseCase("refresh-queue", 2, time.Hour, "https://tiles.example/map", "test-key", sender, &fakeWeatherAPI{}, store)
	t.Cleanup(useCase.Stop)
	return useCase
}

func TestGetDashboard_FirstCallPopulatesData(t *testing.T) {
	useCase := newTestUseCase(t, &fakeLocationStore{}, &fakeQueueSender{})

	response, err := useCase.GetDashboard(weather.Selector{City: "Oslo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if response.Current == nil || response.Current.Name != "Oslo" {
		t.Fatalf("expected current conditions for Oslo, got %+v", response.Current)
	}
	if response.UVIndex == nil || *response.UVIndex != 3.1 {
		t.Errorf("expected uv 3.1, got %v", response.UVIndex)
	}
	if len(response.Forecast) != 1 {
		t.Errorf("expected 1 forecast day, got %d", len(response.Forecast))
	}
	if response.Loading {
		t.Error("expected loading to be cleared after the first cycle")
	}
}

func TestGetDashboard_EmptySelector(t *testing.T) {
	useCase := newTestUseCase(t, &fakeLocationStore{}, &fakeQueueSender{})

	if _, err := useCase.GetDashboard(weather.Selector{}); err == nil {
		t.Fatal("expected an error for an empty selector")
	}
}

func TestGetCalendar_MergesForecastIntoMonthGrid(t *testing.T) {
	useCase := newTestUseCase(t, &fakeLocationStore{}, &fakeQueueSender{})

	calendar, err := useCase.GetCalendar(weather.Selector{City: "Oslo"}, 2026, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(calendar.Days) != 42 {
		t.Fatalf("expected 42 cells, got %d", len(calendar.Days))
	}

	// March 1, 2026 is a Sunday, so the grid starts on the first of the month
	if calendar.Days[0].Date != "2026-03-01" {
		t.Errorf("expected grid to start at 2026-03-01, got %s", calendar.Days[0].Date)
	}
	if !calendar.Days[0].InMonth {
		t.Error("expected the first cell to be in the month")
	}
	if calendar.Days[41].Date != "2026-04-11" {
		t.Errorf("expected grid to end at 2026-04-11, got %s", calendar.Days[41].Date)
	}
	if calendar.Days[41].InMonth {
		t.Error("expected trailing cells to be outside the month")
	}

	cell := calendar.Days[9]
	if cell.Date != "2026-03-10" {
		t.Fatalf("expected cell 9 to be 2026-03-10, got %s", cell.Date)
	}
	if cell.Temp == nil || *cell.Temp != 11 {
		t.Errorf("expected merged temp round((8+13)/2) = 11, got %v", cell.Temp)
	}
	if cell.Icon != "10d" || cell.Description != "light rain" {
		t.Errorf("expected forecast condition merged in, got %+v", cell)
	}

	if calendar.Days[10].Temp != nil {
		t.Error("expected no forecast data outside covered days")
	}
}

func TestGetCalendar_InvalidMonth(t *testing.T) {
	useCase := newTestUseCase(t, &fakeLocationStore{}, &fakeQueueSender{})

	if _, err := useCase.GetCalendar(weather.Selector{City: "Oslo"}, 2026, 13); err == nil {
		t.Fatal("expected an error for month 13")
	}
}

func TestGetMap_DefaultsAndClamping(t *testing.T) {
	useCase := newTestUseCase(t, &fakeLocationStore{}, &fakeQueueSender{})
	selector := weather.Selector{City: "Oslo"}

	overlay, err := useCase.GetMap(selector, "not-a-layer", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overlay.Layer != DefaultMapLayer {
		t.Errorf("expected fallback layer %s, got %s", DefaultMapLayer, overlay.Layer)
	}
	if overlay.Zoom != DefaultMapZoom {
		t.Errorf("expected default zoom %d, got %d", DefaultMapZoom, overlay.Zoom)
	}
	if overlay.Center == nil || overlay.Center.Lat != 59.91 {
		t.Errorf("expected center at the current coordinates, got %+v", overlay.Center)
	}
	if overlay.TileURL != "https://tiles.example/map/precipitation_new/{z}/{x}/{y}.png?appid=test-key" {
		t.Errorf("unexpected tile url: %s", overlay.TileURL)
	}

	overlay, err = useCase.GetMap(selector, "temp_new", 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overlay.Layer != "temp_new" {
		t.Errorf("expected temp_new layer, got %s", overlay.Layer)
	}
	if overlay.Zoom != MaxMapZoom {
		t.Errorf("expected zoom clamped to %d, got %d", MaxMapZoom, overlay.Zoom)
	}
}

func TestEnqueueAllLocationsScheduled_Batches(t *testing.T) {
	store := &fakeLocationStore{locations: []entity.SavedLocation{
		{ID: "a", Name: "Oslo"},
		{ID: "b", Name: "Bergen"},
		{ID: "c", Name: "Tromso"},
	}}
	sender := &fakeQueueSender{}
	useCase := newTestUseCase(t, store, sender)

	if err := useCase.EnqueueAllLocationsScheduled("req-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// batch size is 2, so 3 locations make 2 batches
	if len(sender.batches) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(sender.batches))
	}
	if len(sender.batches[0]) != 2 || len(sender.batches[1]) != 1 {
		t.Errorf("expected batch sizes [2, 1], got [%d, %d]", len(sender.batches[0]), len(sender.batches[1]))
	}
	if sender.batches[0][0].MessageID != "scheduled-req-1-location-a" {
		t.Errorf("unexpected message id: %s", sender.batches[0][0].MessageID)
	}
}

func TestSelectorForLocation_CoordinatesWin(t *testing.T) {
	location := entity.SavedLocation{
		Name:        "Oslo",
		Coordinates: &entity.Coordinates{Lat: 59.91, Lon: 10.75},
	}

	selector := SelectorForLocation(location)
	if selector.Coords == nil || selector.Coords.Lat != 59.91 {
		t.Fatalf("expected coordinates to be used, got %+v", selector.Coords)
	}

	selector = SelectorForLocation(entity.SavedLocation{Name: "Bergen"})
	if selector.Coords != nil || selector.City != "Bergen" {
		t.Fatalf("expected a city selector, got %+v", selector)
	}
}
