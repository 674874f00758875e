package db

import (
	"context"
	"database/sql"
	"time"

	"weather-reminder/internal/domain/model"
)

type SQLCHealthDBGateway struct {
	DB      *sql.DB
	Timeout time.Duration
}

var _ HealthDBGateway = (*SQLCHealthDBGateway)(nil)

func NewSQLCHealthDBGateway(db *sql.DB) *SQLCHealthDBGateway {
	return &SQLCHealthDBGateway{DB: db, Timeout: 2 * time.Second}
}

func (gateway *SQLCHealthDBGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	ctx, cancel := context.WithTimeout(ctx, gateway.Timeout)
	defer cancel()

	if err := gateway.DB.PingContext(ctx); err != nil {
		return downStatus(err)
	}

	stats := gateway.DB.Stats()
	return model.ComponentHealthStatus{
		Status: model.StatusUp,
		Details: map[string]string{
			"message":          string(model.StatusUp),
			"open_connections": itoa(stats.OpenConnections),
			"in_use":           itoa(stats.InUse),
		},
	}
}
