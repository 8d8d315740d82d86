package location

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"weather-dashboard/internal/domain/entity"
	"weather-dashboard/internal/domain/gateway/api"
	"weather-dashboard/internal/domain/gateway/store"
	"weather-dashboard/pkg/log"
)

// ErrLocationNotFound is returned when a removal targets an unknown id.
var ErrLocationNotFound = errors.New("location not found")

// ErrDuplicateLocation is returned when a place name is already saved.
var ErrDuplicateLocation = errors.New("location is already saved")

type locationUseCase struct {
	apiGateway      api.WeatherGateway
	locationGateway store.LocationGateway
}

func NewLocationUseCase(apiGateway api.WeatherGateway, locationGateway store.LocationGateway) UseCase {
	return &locationUseCase{
		apiGateway:      apiGateway,
		locationGateway: locationGateway,
	}
}

// ListLocations returns every saved location, oldest first
func (uc *locationUseCase) ListLocations() ([]entity.SavedLocation, error) {
	return uc.locationGateway.List()
}

// SaveLocation saves a place by name. The provider lookup only enriches the
// entry with country and coordinates; a lookup failure never blocks the save.
func (uc *locationUseCase) SaveLocation(name string) (*entity.SavedLocation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("location name is required")
	}

	existing, err := uc.locationGateway.List()
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate location: %w", err)
	}
	for _, location := range existing {
		if strings.EqualFold(location.Name, name) {
			return nil, ErrDuplicateLocation
		}
	}

	saved := entity.SavedLocation{
		ID:      uuid.New().String(),
		Name:    name,
		AddedAt: time.Now().UnixMilli(),
	}

	if current, err := uc.apiGateway.CurrentByCity(name); err != nil {
		log.Warnf("Could not enrich saved location '%s': %v", name, err)
	} else {
		saved.Name = current.Name
		saved.Country = current.Sys.Country
		saved.Coordinates = &entity.Coordinates{
			Lat: current.Coord.Lat,
			Lon: current.Coord.Lon,
		}
	}

	if err := uc.locationGateway.Save(saved); err != nil {
		return nil, err
	}

	log.Infof("Saved location '%s' (%s)", saved.Name, saved.ID)
	return &saved, nil
}

// SaveCurrentPosition saves the device position under a fixed id, replacing
// any previous device-position entry. A reverse geocoding failure falls back
// to a coordinate label so the position is always saveable.
func (uc *locationUseCase) SaveCurrentPosition(lat float64, lon float64) (*entity.SavedLocation, error) {
	name, err := uc.apiGateway.ReverseGeocode(lat, lon)
	if err != nil {
		log.Warnf("Reverse geocoding failed for %.4f,%.4f: %v", lat, lon, err)
	}
	if name == "" {
		name = fmt.Sprintf("Location %.2f, %.2f", lat, lon)
	}

	saved := entity.SavedLocation{
		ID:      entity.CurrentLocationID,
		Name:    name,
		AddedAt: time.Now().UnixMilli(),
		Coordinates: &entity.Coordinates{
			Lat: lat,
			Lon: lon,
		},
	}

	if err := uc.locationGateway.Save(saved); err != nil {
		return nil, err
	}

	log.Infof("Saved current position as '%s'", saved.Name)
	return &saved, nil
}

// RemoveLocation deletes a saved location by id
func (uc *locationUseCase) RemoveLocation(id string) error {
	location, err := uc.locationGateway.FindByID(id)
	if err != nil {
		return err
	}
	if location == nil {
		return ErrLocationNotFound
	}
	return uc.locationGateway.Remove(id)
}
