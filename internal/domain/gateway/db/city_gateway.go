package db

import (
	"context"
	"errors"

	"weather-reminder/internal/domain/entity"
)

// ErrDuplicatedKey is returned when a write violates a unique constraint.
var ErrDuplicatedKey = errors.New("duplicated key")

type CityGateway interface {
	FindAll(ctx context.Context, page int, size int) ([]entity.City, error)
	FindAllWithKeysetPagination(ctx context.Context, lastID uint, size int) ([]entity.City, error)
	CountAll(ctx context.Context) (int64, error)

	// FindByID and FindByCoordinates return nil without error when nothing matches.
	FindByID(ctx context.Context, id uint) (*entity.City, error)
	FindByCoordinates(ctx context.Context, latitude, longitude float64) (*entity.City, error)

	// CreateWithForecasts stores the city and its forecasts in one transaction.
	CreateWithForecasts(ctx context.Context, city entity.City, forecasts []entity.WeatherForecast) (*entity.City, error)

	// ReplaceForecasts deletes every forecast of the city and inserts forecasts in one transaction.
	ReplaceForecasts(ctx context.Context, cityID uint, forecasts []entity.WeatherForecast) error
	FindForecastsByCityID(ctx context.Context, cityID uint) ([]entity.WeatherForecast, error)
}
