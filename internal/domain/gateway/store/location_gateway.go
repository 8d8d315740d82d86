package store

import "weather-dashboard/internal/domain/entity"

// LocationGateway is the persistence port for saved dashboard locations.
type LocationGateway interface {
	// List returns every saved location
	List() ([]entity.SavedLocation, error)
	// FindByID returns the saved location with the given id, or nil when absent
	FindByID(id string) (*entity.SavedLocation, error)
	// Save stores a location, replacing any previous entry with the same id
	Save(location entity.SavedLocation) error
	// Remove deletes the location with the given id
	Remove(id string) error
}
