package location

import "weather-dashboard/internal/domain/entity"

type UseCase interface {
	// ListLocations returns every saved location, oldest first
	ListLocations() ([]entity.SavedLocation, error)

	// SaveLocation saves a place by name, rejecting duplicates
	SaveLocation(name string) (*entity.SavedLocation, error)

	// SaveCurrentPosition saves the device position, replacing any previous one
	SaveCurrentPosition(lat float64, lon float64) (*entity.SavedLocation, error)

	// RemoveLocation deletes a saved location by id
	RemoveLocation(id string) error
}
