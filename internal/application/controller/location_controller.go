package controller

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"weather-dashboard/internal/domain/model"
	"weather-dashboard/internal/domain/usecase/location"
)

type LocationController struct {
	api       *echo.Group
	useCase   location.UseCase
	validator *validator.Validate
}

func NewLocationController(api *echo.Group, useCase location.UseCase) *LocationController {
	return &LocationController{api: api, useCase: useCase, validator: validator.New()}
}

// InitLocationRoutes initializes saved location routes
func (controller *LocationController) InitLocationRoutes() {
	controller.api.GET("/locations", controller.ListLocations)
	controller.api.POST("/locations", controller.SaveLocation)
	controller.api.POST("/locations/current", controller.SaveCurrentPosition)
	controller.api.DELETE("/locations/:id", controller.RemoveLocation)
}

// ListLocations godoc
// @Summary List saved locations
// @Description Retrieve every saved dashboard location, oldest first
// @Tags locations
// @Accept json
// @Produce json
// @Success 200 {array} entity.SavedLocation "Saved locations"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /locations [get]
func (controller *LocationController) ListLocations(c echo.Context) error {
	locations, err := controller.useCase.ListLocations()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, locations)
}

// SaveLocation godoc
// @Summary Save a location
// @Description Save a place by name for the dashboard
// @Tags locations
// @Accept json
// @Produce json
// @Param location body model.CreateLocationDTO true "Location to save"
// @Success 201 {object} entity.SavedLocation "Saved location"
// @Failure 400 {object} map[string]string "Invalid request body or missing name"
// @Failure 409 {object} map[string]string "Location already saved"
// @Router /locations [post]
func (controller *LocationController) SaveLocation(c echo.Context) error {
	var dto model.CreateLocationDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := controller.validator.Struct(dto); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}

	saved, err := controller.useCase.SaveLocation(dto.Name)
	if err != nil {
		if errors.Is(err, location.ErrDuplicateLocation) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, saved)
}

// SaveCurrentPosition godoc
// @Summary Save the current position
// @Description Save the device position, replacing any previous one
// @Tags locations
// @Accept json
// @Produce json
// @Param position body model.CurrentPositionDTO true "Coordinate pair"
// @Success 201 {object} entity.SavedLocation "Saved location"
// @Failure 400 {object} map[string]string "Invalid request body or missing coordinates"
// @Router /locations/current [post]
func (controller *LocationController) SaveCurrentPosition(c echo.Context) error {
	var dto model.CurrentPositionDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := controller.validator.Struct(dto); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "lat and lon are required"})
	}

	saved, err := controller.useCase.SaveCurrentPosition(*dto.Lat, *dto.Lon)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, saved)
}

// RemoveLocation godoc
// @Summary Remove a saved location
// @Description Delete a saved location by id
// @Tags locations
// @Accept json
// @Produce json
// @Param id path string true "Location id"
// @Success 204 "Location removed"
// @Failure 404 {object} map[string]string "Location not found"
// @Router /locations/{id} [delete]
func (controller *LocationController) RemoveLocation(c echo.Context) error {
	id := c.Param("id")

	if err := controller.useCase.RemoveLocation(id); err != nil {
		if errors.Is(err, location.ErrLocationNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
