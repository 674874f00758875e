package api

import (
	"context"

	"weather-reminder/internal/domain/model"
)

// WeatherGateway is the capability interface of the weather and geocoding provider.
type WeatherGateway interface {
	// FindCitiesByName returns the places matching name, or an empty list.
	FindCitiesByName(ctx context.Context, name string) ([]model.CityCandidate, error)

	// FindCityByCoordinates returns the places near the coordinates, nearest first, or an empty list.
	FindCityByCoordinates(ctx context.Context, latitude, longitude float64) ([]model.CityCandidate, error)

	// FetchForecast returns the forecast series at the coordinates and the place's UTC offset.
	FetchForecast(ctx context.Context, latitude, longitude float64) (*model.ForecastSeries, error)
}
