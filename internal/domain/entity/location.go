package entity

// CurrentLocationID is the fixed identifier of the device-position entry.
// Saving the current position replaces any previous entry under this id.
const CurrentLocationID = "current-location"

// Coordinates is a geographic coordinate pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// SavedLocation is a dashboard location kept in the saved-locations store.
// Coordinates are optional: city entries resolve by name, while the
// current-position entry always carries coordinates.
type SavedLocation struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Country     string       `json:"country,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	AddedAt     int64        `json:"addedAt"`
}
