package model

import (
	"weather-dashboard/internal/domain/forecast"
	"weather-dashboard/internal/domain/model/external"
)

// DashboardResponse is the full dashboard snapshot for one tracked place.
type DashboardResponse struct {
	Location  string                           `json:"location"`
	Current   *external.CurrentWeatherResponse `json:"current,omitempty"`
	UVIndex   *float64                         `json:"uvIndex,omitempty"`
	Forecast  []forecast.Daily                 `json:"forecast,omitempty"`
	Loading   bool                             `json:"loading"`
	Error     string                           `json:"error,omitempty"`
	UpdatedAt string                           `json:"updatedAt,omitempty"`
}

// CalendarDay is one cell of the month grid. Forecast fields are only set
// for days covered by the aggregated forecast.
type CalendarDay struct {
	Date        string  `json:"date"`
	Day         int     `json:"day"`
	InMonth     bool    `json:"inMonth"`
	Temp        *int    `json:"temp,omitempty"`
	Icon        string  `json:"icon,omitempty"`
	Description string  `json:"description,omitempty"`
	Pop         float64 `json:"pop,omitempty"`
}

// CalendarResponse is a 42-cell month grid with forecast days merged in.
// Weeks start on Sunday.
type CalendarResponse struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Days  []CalendarDay `json:"days"`
}

// MapOverlayResponse describes a weather tile overlay centered on the
// tracked place.
type MapOverlayResponse struct {
	Layer   string                `json:"layer"`
	Zoom    int                   `json:"zoom"`
	Center  *external.Coordinates `json:"center,omitempty"`
	TileURL string                `json:"tileUrl"`
}
