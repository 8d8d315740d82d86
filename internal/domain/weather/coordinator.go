package weather

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"

	"weather-dashboard/internal/domain/entity"
	"weather-dashboard/internal/domain/forecast"
	"weather-dashboard/internal/domain/gateway/api"
	"weather-dashboard/internal/domain/model/external"
	"weather-dashboard/pkg/log"
)

// Selector identifies the place a coordinator tracks. When both fields are
// set the coordinates win and the city name is ignored for fetching.
type Selector struct {
	City   string
	Coords *entity.Coordinates
}

// Empty reports whether the selector identifies no place at all.
func (s Selector) Empty() bool {
	return s.City == "" && s.Coords == nil
}

// Key returns a stable registry key for the selector.
func (s Selector) Key() string {
	if s.Coords != nil {
		return fmt.Sprintf("coords:%.4f,%.4f", s.Coords.Lat, s.Coords.Lon)
	}
	return "city:" + s.City
}

// Snapshot is the published view of a refresh cycle. Data fields keep their
// last successful values across failed cycles, so consumers always render
// the freshest data the coordinator ever had.
type Snapshot struct {
	Current   *external.CurrentWeatherResponse
	UV        *float64
	Forecast  []forecast.Daily
	Loading   bool
	Error     string
	UpdatedAt time.Time
}

// Coordinator drives the periodic refresh of a single tracked place. Cycles
// may overlap when a manual refresh races the timer; only the cycle started
// last is allowed to publish its outcome.
type Coordinator struct {
	gateway   api.WeatherGateway
	selector  Selector
	scheduler gocron.Scheduler

	mu       sync.Mutex
	snapshot Snapshot
	stopped  bool

	seq atomic.Uint64
}

// NewCoordinator creates a stopped coordinator for the given selector.
func NewCoordinator(gateway api.WeatherGateway, selector Selector) *Coordinator {
	return &Coordinator{
		gateway:  gateway,
		selector: selector,
	}
}

// Start runs one refresh cycle immediately and then keeps refreshing at the
// given interval until Stop is called. An empty selector is a no-op, and a
// non-positive interval disables auto-refresh after the immediate cycle.
func (c *Coordinator) Start(interval time.Duration) error {
	if c.selector.Empty() {
		return nil
	}

	c.runCycle()

	if interval <= 0 {
		return nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create refresh scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(c.runCycle),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule refresh job: %w", err)
	}

	scheduler.Start()

	c.mu.Lock()
	c.scheduler = scheduler
	c.mu.Unlock()
	return nil
}

// Refresh runs one refresh cycle synchronously. An empty selector is a no-op.
func (c *Coordinator) Refresh() {
	if c.selector.Empty() {
		return
	}
	c.runCycle()
}

// Stop kills the refresh timer and prevents any in-flight cycle from
// publishing. The last published snapshot remains readable.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	c.stopped = true
	scheduler := c.scheduler
	c.scheduler = nil
	c.mu.Unlock()

	// invalidate every started cycle
	c.seq.Add(1)

	if scheduler != nil {
		if err := scheduler.Shutdown(); err != nil {
			log.Warnf("failed to shut down refresh scheduler: %v", err)
		}
	}
}

// Snapshot returns a copy of the last published state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// Selector returns the place this coordinator tracks.
func (c *Coordinator) Selector() Selector {
	return c.selector
}

// cycleResult carries the fetched payloads of one cycle before publication.
type cycleResult struct {
	current  *external.CurrentWeatherResponse
	uv       *float64
	forecast []forecast.Daily
}

func (c *Coordinator) runCycle() {
	cycle := c.seq.Add(1)

	if !c.publishStart(cycle) {
		return
	}

	result, err := c.fetch()
	if err != nil {
		c.publishError(cycle, err)
		return
	}
	c.publishData(cycle, result)
}

// publishStart flips the snapshot into the loading state. It returns false
// when the cycle has already been superseded or the coordinator stopped.
func (c *Coordinator) publishStart(cycle uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || cycle != c.seq.Load() {
		return false
	}
	c.snapshot.Loading = true
	c.snapshot.Error = ""
	return true
}

func (c *Coordinator) publishError(cycle uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || cycle != c.seq.Load() {
		return
	}
	c.snapshot.Loading = false
	c.snapshot.Error = err.Error()
	c.snapshot.UpdatedAt = time.Now()
	log.Warnf("refresh cycle failed for %s: %v", c.selector.Key(), err)
}

func (c *Coordinator) publishData(cycle uint64, result cycleResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || cycle != c.seq.Load() {
		return
	}
	c.snapshot.Current = result.current
	c.snapshot.UV = result.uv
	c.snapshot.Forecast = result.forecast
	c.snapshot.Loading = false
	c.snapshot.Error = ""
	c.snapshot.UpdatedAt = time.Now()
}

func (c *Coordinator) fetch() (cycleResult, error) {
	if c.selector.Coords != nil {
		return c.fetchByCoordinates(c.selector.Coords.Lat, c.selector.Coords.Lon)
	}
	return c.fetchByCity(c.selector.City)
}

// fetchByCoordinates runs the three provider calls in parallel since the
// coordinates are already known. Current conditions and forecast are
// required; a UV failure only leaves the UV value unset for this cycle.
func (c *Coordinator) fetchByCoordinates(lat, lon float64) (cycleResult, error) {
	var (
		wg          sync.WaitGroup
		current     *external.CurrentWeatherResponse
		forecastRes *external.ForecastResponse
		uvValue     float64
		currentErr  error
		forecastErr error
		uvErr       error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		current, currentErr = c.gateway.CurrentByCoordinates(lat, lon)
	}()
	go func() {
		defer wg.Done()
		forecastRes, forecastErr = c.gateway.ForecastByCoordinates(lat, lon)
	}()
	go func() {
		defer wg.Done()
		uvValue, uvErr = c.gateway.UVIndex(lat, lon)
	}()
	wg.Wait()

	if currentErr != nil {
		return cycleResult{}, currentErr
	}
	if forecastErr != nil {
		return cycleResult{}, forecastErr
	}

	result := cycleResult{
		current:  current,
		forecast: forecast.Aggregate(toSamples(forecastRes.List)),
	}
	if uvErr != nil {
		log.Warnf("uv index lookup failed for %s: %v", c.selector.Key(), uvErr)
	} else {
		result.uv = &uvValue
	}
	return result, nil
}

// fetchByCity resolves the place name first: the UV endpoint only accepts
// coordinates, so the current conditions response provides them.
func (c *Coordinator) fetchByCity(city string) (cycleResult, error) {
	current, err := c.gateway.CurrentByCity(city)
	if err != nil {
		return cycleResult{}, err
	}

	result := cycleResult{current: current}

	uvValue, uvErr := c.gateway.UVIndex(current.Coord.Lat, current.Coord.Lon)
	if uvErr != nil {
		log.Warnf("uv index lookup failed for %s: %v", c.selector.Key(), uvErr)
	} else {
		result.uv = &uvValue
	}

	forecastRes, err := c.gateway.ForecastByCity(city)
	if err != nil {
		return cycleResult{}, err
	}
	result.forecast = forecast.Aggregate(toSamples(forecastRes.List))

	return result, nil
}

// toSamples converts provider forecast items into aggregator samples. Items
// without a weather block keep a zero condition rather than being dropped.
func toSamples(items []external.ForecastItem) []forecast.Sample {
	samples := make([]forecast.Sample, 0, len(items))
	for _, item := range items {
		sample := forecast.Sample{
			Timestamp: item.Dt,
			Temp:      item.Main.Temp,
			TempMin:   item.Main.TempMin,
			TempMax:   item.Main.TempMax,
			Humidity:  item.Main.Humidity,
			WindSpeed: item.Wind.Speed,
			Pop:       item.Pop,
		}
		if len(item.Weather) > 0 {
			sample.Condition = forecast.Condition{
				ID:          item.Weather[0].ID,
				Main:        item.Weather[0].Main,
				Description: item.Weather[0].Description,
				Icon:        item.Weather[0].Icon,
			}
		}
		samples = append(samples, sample)
	}
	return samples
}
