package external

import "encoding/json"

// Coordinates is the lat/lon pair echoed back by the provider.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// WeatherCondition is one entry of the provider's weather array.
type WeatherCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CurrentMain carries the temperature and atmosphere block of a current
// conditions response.
type CurrentMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"`
	SeaLevel  int     `json:"sea_level"`
	GrndLevel int     `json:"grnd_level"`
}

// Wind is the wind block of a current conditions response.
type Wind struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
	Gust  float64 `json:"gust"`
}

// Clouds is the cloud cover block of a current conditions response.
type Clouds struct {
	All int `json:"all"`
}

// Sys carries country and sun times of a current conditions response.
type Sys struct {
	Country string `json:"country"`
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
}

// CurrentWeatherResponse is the provider's current conditions payload,
// identical for lookups by place name and by coordinate pair.
type CurrentWeatherResponse struct {
	Coord      Coordinates        `json:"coord"`
	Weather    []WeatherCondition `json:"weather"`
	Main       CurrentMain        `json:"main"`
	Visibility int                `json:"visibility"`
	Wind       Wind               `json:"wind"`
	Clouds     Clouds             `json:"clouds"`
	Dt         int64              `json:"dt"`
	Sys        Sys                `json:"sys"`
	Timezone   int                `json:"timezone"`
	ID         int64              `json:"id"`
	Name       string             `json:"name"`
}

// ForecastMain carries the temperature block of one 3-hour forecast item.
type ForecastMain struct {
	Temp     float64 `json:"temp"`
	TempMin  float64 `json:"temp_min"`
	TempMax  float64 `json:"temp_max"`
	Humidity int     `json:"humidity"`
}

// ForecastWind is the wind block of one 3-hour forecast item.
type ForecastWind struct {
	Speed float64 `json:"speed"`
}

// ForecastItem is one 3-hour-resolution entry of the forecast list.
type ForecastItem struct {
	Dt      int64              `json:"dt"`
	Main    ForecastMain       `json:"main"`
	Weather []WeatherCondition `json:"weather"`
	Wind    ForecastWind       `json:"wind"`
	Pop     float64            `json:"pop"`
	DtTxt   string             `json:"dt_txt"`
}

// ForecastCity identifies the place a forecast belongs to.
type ForecastCity struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// ForecastResponse is the provider's ~5-day, 3-hour-granularity forecast payload.
type ForecastResponse struct {
	List []ForecastItem `json:"list"`
	City ForecastCity   `json:"city"`
}

// UVIndexResponse is the provider's UV index payload for a coordinate pair.
type UVIndexResponse struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Value float64 `json:"value"`
}

// ReverseGeocodeResult is one entry of the reverse geocoding response array.
type ReverseGeocodeResult struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// APIErrorResponse is the provider's error payload. The cod field is a
// string in error responses but a number in success payloads, hence
// json.Number.
type APIErrorResponse struct {
	Cod     json.Number `json:"cod"`
	Message string      `json:"message"`
}
