package db

import (
	"context"

	"weather-reminder/internal/domain/model"

	"gorm.io/gorm"
)

type GormHealthDBGateway struct {
	DB *gorm.DB
}

var _ HealthDBGateway = (*GormHealthDBGateway)(nil)

func NewGormHealthDBGateway(db *gorm.DB) *GormHealthDBGateway {
	return &GormHealthDBGateway{DB: db}
}

func (gateway *GormHealthDBGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	sqlDB, err := gateway.DB.DB()
	if err != nil {
		return downStatus(err)
	}

	var cities int64
	if err = gateway.DB.WithContext(ctx).Table("cities").Count(&cities).Error; err != nil {
		return downStatus(err)
	}

	return model.ComponentHealthStatus{
		Status: model.StatusUp,
		Details: map[string]string{
			"message":          string(model.StatusUp),
			"cities":           itoa(int(cities)),
			"open_connections": itoa(sqlDB.Stats().OpenConnections),
		},
	}
}
