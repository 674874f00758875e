package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"weather-reminder/internal/domain/entity"

	"gorm.io/gorm"
)

type GormCityGateway struct {
	DB *gorm.DB
}

var _ CityGateway = (*GormCityGateway)(nil)

func NewGormCityGateway(db *gorm.DB) *GormCityGateway {
	return &GormCityGateway{DB: db}
}

// FindAll retrieves cities ordered by name with 0-based pagination
func (gateway *GormCityGateway) FindAll(ctx context.Context, page int, size int) ([]entity.City, error) {
	if page < 0 {
		page = 0
	}

	cities := make([]entity.City, 0)
	err := gateway.DB.WithContext(ctx).
		Order("name ASC").Order("id ASC").
		Offset(page * size).
		Limit(size).
		Find(&cities).Error
	if err != nil {
		return nil, err
	}
	return cities, nil
}

// FindAllWithKeysetPagination retrieves cities with an id greater than lastID
func (gateway *GormCityGateway) FindAllWithKeysetPagination(ctx context.Context, lastID uint, size int) ([]entity.City, error) {
	cities := make([]entity.City, 0)
	err := gateway.DB.WithContext(ctx).
		Where("id > ?", lastID).
		Order("id ASC").
		Limit(size).
		Find(&cities).Error
	if err != nil {
		return nil, err
	}
	return cities, nil
}

func (gateway *GormCityGateway) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := gateway.DB.WithContext(ctx).Model(&entity.City{}).Count(&count).Error
	return count, err
}

func (gateway *GormCityGateway) FindByID(ctx context.Context, id uint) (*entity.City, error) {
	var city entity.City
	err := gateway.DB.WithContext(ctx).First(&city, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &city, nil
}

// FindByCoordinates matches the already normalized coordinates exactly
func (gateway *GormCityGateway) FindByCoordinates(ctx context.Context, latitude, longitude float64) (*entity.City, error) {
	var city entity.City
	err := gateway.DB.WithContext(ctx).
		Where("latitude = ? AND longitude = ?", latitude, longitude).
		First(&city).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &city, nil
}

func (gateway *GormCityGateway) CreateWithForecasts(ctx context.Context, city entity.City, forecasts []entity.WeatherForecast) (*entity.City, error) {
	city.WeatherForecasts = nil

	err := gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&city).Error; err != nil {
			return translateError(err)
		}
		return insertForecasts(tx, city.ID, forecasts)
	})
	if err != nil {
		return nil, err
	}
	return &city, nil
}

func (gateway *GormCityGateway) ReplaceForecasts(ctx context.Context, cityID uint, forecasts []entity.WeatherForecast) error {
	return gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("city_id = ?", cityID).Delete(&entity.WeatherForecast{}).Error; err != nil {
			return fmt.Errorf("failed to delete forecasts of city %d: %w", cityID, err)
		}
		return insertForecasts(tx, cityID, forecasts)
	})
}

func (gateway *GormCityGateway) FindForecastsByCityID(ctx context.Context, cityID uint) ([]entity.WeatherForecast, error) {
	forecasts := make([]entity.WeatherForecast, 0)
	err := gateway.DB.WithContext(ctx).
		Where("city_id = ?", cityID).
		Order("datetime ASC").
		Find(&forecasts).Error
	if err != nil {
		return nil, err
	}
	return forecasts, nil
}

func insertForecasts(tx *gorm.DB, cityID uint, forecasts []entity.WeatherForecast) error {
	if len(forecasts) == 0 {
		return nil
	}

	rows := make([]entity.WeatherForecast, len(forecasts))
	for i, forecast := range forecasts {
		forecast.ID = 0
		forecast.CityID = cityID
		forecast.Datetime = forecast.Datetime.UTC()
		rows[i] = forecast
	}

	if err := tx.CreateInBatches(&rows, 100).Error; err != nil {
		return fmt.Errorf("failed to insert forecasts of city %d: %w", cityID, translateError(err))
	}
	return nil
}

// translateError maps unique constraint violations of any dialect to ErrDuplicatedKey.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicatedKey, err)
	}
	message := err.Error()
	if strings.Contains(message, "UNIQUE constraint failed") || strings.Contains(message, "duplicate key value") {
		return fmt.Errorf("%w: %v", ErrDuplicatedKey, err)
	}
	return err
}
