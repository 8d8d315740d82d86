package model

type CreateLocationDTO struct {
	Name string `json:"name" validate:"required"`
}

type CurrentPositionDTO struct {
	Lat *float64 `json:"lat" validate:"required"`
	Lon *float64 `json:"lon" validate:"required"`
}
