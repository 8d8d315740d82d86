package controller

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"weather-dashboard/internal/domain/entity"
	"weather-dashboard/internal/domain/usecase/dashboard"
	"weather-dashboard/internal/domain/weather"
	"weather-dashboard/pkg/util/numberutils"
)

type DashboardController struct {
	api         *echo.Group
	useCase     dashboard.UseCase
	defaultCity string
}

func NewDashboardController(api *echo.Group, useCase dashboard.UseCase, defaultCity string) *DashboardController {
	return &DashboardController{api: api, useCase: useCase, defaultCity: defaultCity}
}

// InitDashboardRoutes initializes dashboard routes
func (controller *DashboardController) InitDashboardRoutes() {
	controller.api.GET("/dashboard", controller.GetDashboard)
	controller.api.GET("/dashboard/current", controller.GetCurrent)
	controller.api.GET("/dashboard/forecast", controller.GetForecast)
	controller.api.GET("/dashboard/calendar", controller.GetCalendar)
	controller.api.GET("/dashboard/map", controller.GetMap)
	controller.api.POST("/dashboard/refresh", controller.Refresh)
}

// selector resolves the tracked place from the request. A full coordinate
// pair wins over the city name; with neither present the configured default
// city applies.
func (controller *DashboardController) selector(c echo.Context) weather.Selector {
	latParam := c.QueryParam("lat")
	lonParam := c.QueryParam("lon")
	if latParam != "" && lonParam != "" {
		lat, latOk := numberutils.ToFloat64(latParam)
		lon, lonOk := numberutils.ToFloat64(lonParam)
		if latOk && lonOk {
			return weather.Selector{Coords: &entity.Coordinates{Lat: lat, Lon: lon}}
		}
	}

	if city := c.QueryParam("city"); city != "" {
		return weather.Selector{City: city}
	}
	return weather.Selector{City: controller.defaultCity}
}

// GetDashboard godoc
// @Summary Get the weather dashboard
// @Description Retrieve the full dashboard snapshot for a city or coordinate pair
// @Tags dashboard
// @Accept json
// @Produce json
// @Param city query string false "City name"
// @Param lat query number false "Latitude, used together with lon"
// @Param lon query number false "Longitude, used together with lat"
// @Success 200 {object} model.DashboardResponse "Dashboard snapshot"
// @Failure 400 {object} map[string]string "No place selected"
// @Router /dashboard [get]
func (controller *DashboardController) GetDashboard(c echo.Context) error {
	selector := controller.selector(c)
	if selector.Empty() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "A city name or a coordinate pair is required"})
	}

	response, err := controller.useCase.GetDashboard(selector)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, response)
}

// GetCurrent godoc
// @Summary Get current conditions
// @Description Retrieve only the current conditions of the dashboard snapshot
// @Tags dashboard
// @Accept json
// @Produce json
// @Param city query string false "City name"
// @Param lat query number false "Latitude, used together with lon"
// @Param lon query number false "Longitude, used together with lat"
// @Success 200 {object} external.CurrentWeatherResponse "Current conditions"
// @Failure 404 {object} map[string]string "No current conditions available"
// @Router /dashboard/current [get]
func (controller *DashboardController) GetCurrent(c echo.Context) error {
	selector := controller.selector(c)
	if selector.Empty() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "A city name or a coordinate pair is required"})
	}

	current, err := controller.useCase.GetCurrent(selector)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, current)
}

// GetForecast godoc
// @Summary Get the daily forecast
// @Description Retrieve the aggregated daily forecast of the dashboard snapshot
// @Tags dashboard
// @Accept json
// @Produce json
// @Param city query string false "City name"
// @Param lat query number false "Latitude, used together with lon"
// @Param lon query number false "Longitude, used together with lat"
// @Success 200 {array} forecast.Daily "Aggregated daily forecast"
// @Failure 404 {object} map[string]string "No forecast available"
// @Router /dashboard/forecast [get]
func (controller *DashboardController) GetForecast(c echo.Context) error {
	selector := controller.selector(c)
	if selector.Empty() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "A city name or a coordinate pair is required"})
	}

	daily, err := controller.useCase.GetForecast(selector)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, daily)
}

// GetCalendar godoc
// @Summary Get the forecast calendar
// @Description Retrieve a month grid with the aggregated forecast merged in
// @Tags dashboard
// @Accept json
// @Produce json
// @Param city query string false "City name"
// @Param lat query number false "Latitude, used together with lon"
// @Param lon query number false "Longitude, used together with lat"
// @Param year query int false "Calendar year, defaults to the current year"
// @Param month query int false "Calendar month (1-12), defaults to the current month"
// @Success 200 {object} model.CalendarResponse "Month grid"
// @Failure 400 {object} map[string]string "Invalid month"
// @Router /dashboard/calendar [get]
func (controller *DashboardController) GetCalendar(c echo.Context) error {
	selector := controller.selector(c)
	if selector.Empty() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "A city name or a coordinate pair is required"})
	}

	now := time.Now().UTC()
	year := numberutils.ToIntWithDefault(c.QueryParam("year"), now.Year())
	month := numberutils.ToIntWithDefault(c.QueryParam("month"), int(now.Month()))

	calendar, err := controller.useCase.GetCalendar(selector, year, month)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, calendar)
}

// GetMap godoc
// @Summary Get the weather map overlay
// @Description Retrieve a tile overlay description centered on the tracked place
// @Tags dashboard
// @Accept json
// @Produce json
// @Param city query string false "City name"
// @Param lat query number false "Latitude, used together with lon"
// @Param lon query number false "Longitude, used together with lat"
// @Param layer query string false "Tile layer" default(precipitation_new)
// @Param zoom query int false "Zoom level (3-10)" default(6)
// @Success 200 {object} model.MapOverlayResponse "Tile overlay description"
// @Router /dashboard/map [get]
func (controller *DashboardController) GetMap(c echo.Context) error {
	selector := controller.selector(c)
	if selector.Empty() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "A city name or a coordinate pair is required"})
	}

	layer := c.QueryParam("layer")
	zoom := numberutils.ToIntWithDefault(c.QueryParam("zoom"), 0)

	overlay, err := controller.useCase.GetMap(selector, layer, zoom)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, overlay)
}

// Refresh godoc
// @Summary Refresh the dashboard
// @Description Force an immediate refresh cycle for the tracked place
// @Tags dashboard
// @Accept json
// @Produce json
// @Param city query string false "City name"
// @Param lat query number false "Latitude, used together with lon"
// @Param lon query number false "Longitude, used together with lat"
// @Success 202 {object} map[string]string "Refresh triggered"
// @Router /dashboard/refresh [post]
func (controller *DashboardController) Refresh(c echo.Context) error {
	selector := controller.selector(c)
	if selector.Empty() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "A city name or a coordinate pair is required"})
	}

	// Execute in a separate goroutine to avoid blocking the request
	go func() {
		_ = controller.useCase.Refresh(selector)
	}()
	return c.JSON(http.StatusAccepted, map[string]string{"message": "Dashboard refresh triggered"})
}
