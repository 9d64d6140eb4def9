package models

import "clima-be/internal/weather"

// CityRequest is the body of the weather lookups.
type CityRequest struct {
	Ciudad string `json:"ciudad"`
}

// WeatherResult is the weather lookup outcome. Found=false is a normal
// result, not an error.
type WeatherResult struct {
	Found    bool             `json:"found"`
	Message  string           `json:"message,omitempty"`
	Location string           `json:"location,omitempty"`
	Weather  *weather.Current `json:"weather,omitempty"`
}

// CoordinatesResult is the coordinates-only lookup outcome.
type CoordinatesResult struct {
	Found   bool    `json:"found"`
	Message string  `json:"message,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// StatusResponse is the envelope of the weather endpoints.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}
