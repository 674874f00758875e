package weather

import (
	"context"
	"time"

	"weather-reminder/internal/domain/entity"
	"weather-reminder/internal/domain/model"
)

type UseCase interface {
	// GetCity resolves coordinates to a stored city without creating one.
	// It fails with ErrCityNotFound or *UnresolvedCityCandidateError.
	GetCity(ctx context.Context, latitude, longitude float64) (*entity.City, error)

	// GetOrCreateCity resolves coordinates and creates the provider's candidate when it is not stored yet
	GetOrCreateCity(ctx context.Context, latitude, longitude float64) (*entity.City, error)

	// CreateCity fetches the initial forecast and stores city and forecasts atomically
	CreateCity(ctx context.Context, candidate model.CityCandidate) (*entity.City, error)

	// UpdateCityWeatherForecast replaces every stored forecast of city with a fresh provider forecast
	UpdateCityWeatherForecast(ctx context.Context, city entity.City) error

	// UpdateWeatherForecast refreshes every known city and records the cycle completion time
	UpdateWeatherForecast(ctx context.Context, requestID string) (*model.SyncReport, error)

	FindCitiesByName(ctx context.Context, name string) ([]model.CityCandidate, error)
	FindAllCities(ctx context.Context, page int, size int) (*model.Page[entity.City], error)

	// GetCityForecast returns the stored forecast of the city at the coordinates
	GetCityForecast(ctx context.Context, latitude, longitude float64) (*model.CityForecast, error)

	// GetLastUpdateTime returns nil before the first completed cycle
	GetLastUpdateTime(ctx context.Context) (*time.Time, error)
}
