package model

import "weather-reminder/internal/domain/entity"

// CityCandidate is a place known to the provider, with normalized coordinates.
type CityCandidate struct {
	Name        string  `json:"name"`
	CountryCode string  `json:"countryCode"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// NewCityCandidate normalizes the raw provider coordinates.
func NewCityCandidate(name, countryCode string, latitude, longitude float64) CityCandidate {
	lat, lon := entity.NormalizeCoordinates(latitude, longitude)
	return CityCandidate{
		Name:        name,
		CountryCode: countryCode,
		Latitude:    lat,
		Longitude:   lon,
	}
}
