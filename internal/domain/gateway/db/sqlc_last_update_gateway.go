package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"weather-reminder/internal/domain/entity"
)

const (
	upsertLastUpdateQuery = `
		INSERT INTO last_update_time (key, updated)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET updated = EXCLUDED.updated`

	findLastUpdateQuery = `
		SELECT updated
		FROM last_update_time
		WHERE key = $1`
)

type SQLCLastUpdateGateway struct {
	DB *sql.DB
}

var _ LastUpdateGateway = (*SQLCLastUpdateGateway)(nil)

func NewSQLCLastUpdateGateway(db *sql.DB) *SQLCLastUpdateGateway {
	return &SQLCLastUpdateGateway{DB: db}
}

func (gateway *SQLCLastUpdateGateway) Upsert(ctx context.Context, updated time.Time) error {
	_, err := gateway.DB.ExecContext(ctx, upsertLastUpdateQuery, entity.LastUpdateKey, updated.UTC())
	return err
}

func (gateway *SQLCLastUpdateGateway) Find(ctx context.Context) (*time.Time, error) {
	var updated time.Time
	err := gateway.DB.QueryRowContext(ctx, findLastUpdateQuery, entity.LastUpdateKey).Scan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	updated = updated.UTC()
	return &updated, nil
}
