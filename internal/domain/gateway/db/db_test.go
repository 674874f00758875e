package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"weather-reminder/internal/domain/entity"
	"weather-reminder/internal/domain/model"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "weather.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(&entity.City{}, &entity.WeatherForecast{}, &entity.Subscriber{}, &entity.Subscription{}, &entity.LastUpdateTime{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func forecastsFrom(start time.Time, count int, temperature float64) []entity.WeatherForecast {
	forecasts := make([]entity.WeatherForecast, count)
	for i := range forecasts {
		forecasts[i] = entity.WeatherForecast{
			Datetime:           start.Add(time.Duration(i*3) * time.Hour),
			Temperature:        temperature,
			Pressure:           1018,
			Humidity:           80,
			WeatherDescription: "Clouds: overcast clouds",
		}
	}
	return forecasts
}

func TestCityGatewayCreateAndFind(t *testing.T) {
	ctx := context.Background()
	gateway := NewGormCityGateway(newTestDB(t))
	start := time.Date(2022, 11, 14, 15, 0, 0, 0, time.UTC)

	created, err := gateway.CreateWithForecasts(ctx, entity.City{Name: "City_40_40", CountryCode: "TR", Latitude: 40, Longitude: 40, Timezone: 10800}, forecastsFrom(start, 4, 11))
	if err != nil {
		t.Fatalf("CreateWithForecasts: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("created city has no id")
	}

	found, err := gateway.FindByCoordinates(ctx, 40, 40)
	if err != nil || found == nil || found.ID != created.ID || found.Timezone != 10800 {
		t.Fatalf("FindByCoordinates = %+v, %v", found, err)
	}

	missing, err := gateway.FindByCoordinates(ctx, 40.0001, 40)
	if err != nil || missing != nil {
		t.Fatalf("FindByCoordinates on other coordinates = %+v, %v", missing, err)
	}

	forecasts, err := gateway.FindForecastsByCityID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindForecastsByCityID: %v", err)
	}
	if len(forecasts) != 4 || !forecasts[0].Datetime.Equal(start) {
		t.Fatalf("forecasts = %+v", forecasts)
	}

	byID, err := gateway.FindByID(ctx, created.ID)
	if err != nil || byID == nil || byID.Name != "City_40_40" {
		t.Fatalf("FindByID = %+v, %v", byID, err)
	}
	if none, err := gateway.FindByID(ctx, 999); err != nil || none != nil {
		t.Fatalf("FindByID(999) = %+v, %v", none, err)
	}
}

func TestCityGatewayDuplicateCoordinatesRollsBack(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	gateway := NewGormCityGateway(db)
	start := time.Date(2022, 11, 14, 15, 0, 0, 0, time.UTC)

	if _, err := gateway.CreateWithForecasts(ctx, entity.City{Name: "A", CountryCode: "TR", Latitude: 1, Longitude: 2}, forecastsFrom(start, 2, 1)); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := gateway.CreateWithForecasts(ctx, entity.City{Name: "B", CountryCode: "TR", Latitude: 1, Longitude: 2}, forecastsFrom(start, 3, 1))
	if !errors.Is(err, ErrDuplicatedKey) {
		t.Fatalf("err = %v, want ErrDuplicatedKey", err)
	}

	var cities, forecasts int64
	db.Model(&entity.City{}).Count(&cities)
	db.Model(&entity.WeatherForecast{}).Count(&forecasts)
	if cities != 1 || forecasts != 2 {
		t.Fatalf("cities = %d forecasts = %d, want 1 and 2", cities, forecasts)
	}
}

func TestCityGatewayForecastFailureRollsBackCity(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	gateway := NewGormCityGateway(db)
	start := time.Date(2022, 11, 14, 15, 0, 0, 0, time.UTC)

	// two forecasts on the same datetime violate the (city, datetime) index
	forecasts := append(forecastsFrom(start, 1, 1), forecastsFrom(start, 1, 2)...)
	if _, err := gateway.CreateWithForecasts(ctx, entity.City{Name: "A", CountryCode: "TR", Latitude: 5, Longitude: 5}, forecasts); err == nil {
		t.Fatal("expected error")
	}

	if city, err := gateway.FindByCoordinates(ctx, 5, 5); err != nil || city != nil {
		t.Fatalf("city must not exist after rollback: %+v, %v", city, err)
	}
}

func TestCityGatewayReplaceForecasts(t *testing.T) {
	ctx := context.Background()
	gateway := NewGormCityGateway(newTestDB(t))
	oldStart := time.Date(2022, 11, 14, 15, 0, 0, 0, time.UTC)
	newStart := oldStart.Add(24 * time.Hour)

	city, err := gateway.CreateWithForecasts(ctx, entity.City{Name: "A", CountryCode: "TR", Latitude: 1, Longitude: 1}, forecastsFrom(oldStart, 4, 1))
	if err != nil {
		t.Fatalf("CreateWithForecasts: %v", err)
	}
	other, err := gateway.CreateWithForecasts(ctx, entity.City{Name: "B", CountryCode: "TR", Latitude: 2, Longitude: 2}, forecastsFrom(oldStart, 4, 1))
	if err != nil {
		t.Fatalf("CreateWithForecasts: %v", err)
	}

	if err := gateway.ReplaceForecasts(ctx, city.ID, forecastsFrom(newStart, 3, 9)); err != nil {
		t.Fatalf("ReplaceForecasts: %v", err)
	}

	forecasts, _ := gateway.FindForecastsByCityID(ctx, city.ID)
	if len(forecasts) != 3 {
		t.Fatalf("forecasts = %d, want 3", len(forecasts))
	}
	for _, forecast := range forecasts {
		if forecast.Datetime.Before(newStart) || forecast.Temperature != 9 {
			t.Fatalf("stale forecast left: %+v", forecast)
		}
	}

	untouched, _ := gateway.FindForecastsByCityID(ctx, other.ID)
	if len(untouched) != 4 {
		t.Fatalf("other city forecasts = %d, want 4", len(untouched))
	}
}

func TestCityGatewayPagination(t *testing.T) {
	ctx := context.Background()
	gateway := NewGormCityGateway(newTestDB(t))
	for i, name := range []string{"Cairo", "Ankara", "Berlin"} {
		if _, err := gateway.CreateWithForecasts(ctx, entity.City{Name: name, CountryCode: "XX", Latitude: float64(i), Longitude: 0}, nil); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	page, err := gateway.FindAll(ctx, 0, 2)
	if err != nil || len(page) != 2 || page[0].Name != "Ankara" || page[1].Name != "Berlin" {
		t.Fatalf("FindAll page 0 = %+v, %v", page, err)
	}
	if count, err := gateway.CountAll(ctx); err != nil || count != 3 {
		t.Fatalf("CountAll = %d, %v", count, err)
	}

	keyset, err := gateway.FindAllWithKeysetPagination(ctx, page[0].ID-1, 10)
	if err != nil || len(keyset) == 0 || keyset[0].ID != page[0].ID {
		t.Fatalf("keyset = %+v, %v", keyset, err)
	}
}

func TestSubscriptionGateway(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	cities := NewGormCityGateway(db)
	gateway := NewGormSubscriptionGateway(db)

	city, err := cities.CreateWithForecasts(ctx, entity.City{Name: "City_40_40", CountryCode: "TR", Latitude: 40, Longitude: 40}, nil)
	if err != nil {
		t.Fatalf("create city: %v", err)
	}

	subscriber, err := gateway.FindOrCreateSubscriber(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("FindOrCreateSubscriber: %v", err)
	}
	again, err := gateway.FindOrCreateSubscriber(ctx, "a@example.com")
	if err != nil || again.ID != subscriber.ID {
		t.Fatalf("second FindOrCreateSubscriber = %+v, %v", again, err)
	}

	created, err := gateway.Create(ctx, entity.Subscription{SubscriberID: subscriber.ID, CityID: city.ID, NotificationFrequency: 3})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.City.Name != "City_40_40" || created.Subscriber.Email != "a@example.com" {
		t.Fatalf("created without associations: %+v", created)
	}

	_, err = gateway.Create(ctx, entity.Subscription{SubscriberID: subscriber.ID, CityID: city.ID, NotificationFrequency: 5})
	if !errors.Is(err, ErrDuplicatedKey) {
		t.Fatalf("duplicate err = %v", err)
	}

	updated, err := gateway.UpdateFrequency(ctx, created.ID, 6)
	if err != nil || updated == nil || updated.NotificationFrequency != 6 {
		t.Fatalf("UpdateFrequency = %+v, %v", updated, err)
	}
	if missing, err := gateway.UpdateFrequency(ctx, 999, 6); err != nil || missing != nil {
		t.Fatalf("UpdateFrequency(999) = %+v, %v", missing, err)
	}

	byEmail, err := gateway.FindBySubscriberEmail(ctx, "a@example.com")
	if err != nil || len(byEmail) != 1 || byEmail[0].City.ID != city.ID {
		t.Fatalf("FindBySubscriberEmail = %+v, %v", byEmail, err)
	}
	if other, _ := gateway.FindBySubscriberEmail(ctx, "b@example.com"); len(other) != 0 {
		t.Fatalf("unexpected subscriptions for b: %+v", other)
	}

	due, err := gateway.FindDue(ctx, 12)
	if err != nil || len(due) != 1 || due[0].Subscriber.Email != "a@example.com" {
		t.Fatalf("FindDue = %+v, %v", due, err)
	}

	if err := gateway.DeleteByID(ctx, created.ID); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if gone, err := gateway.FindByID(ctx, created.ID); err != nil || gone != nil {
		t.Fatalf("FindByID after delete = %+v, %v", gone, err)
	}
}

func TestSubscriptionGatewayFindDue(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	cities := NewGormCityGateway(db)
	gateway := NewGormSubscriptionGateway(db)

	frequencies := []int{1, 2, 3, 4, 24}
	for i, frequency := range frequencies {
		city, err := cities.CreateWithForecasts(ctx, entity.City{Name: fmt.Sprintf("City_%d", i), CountryCode: "TR", Latitude: float64(i), Longitude: 0}, nil)
		if err != nil {
			t.Fatalf("create city: %v", err)
		}
		subscriber, err := gateway.FindOrCreateSubscriber(ctx, fmt.Sprintf("user%d@example.com", i))
		if err != nil {
			t.Fatalf("FindOrCreateSubscriber: %v", err)
		}
		if _, err := gateway.Create(ctx, entity.Subscription{SubscriberID: subscriber.ID, CityID: city.ID, NotificationFrequency: frequency}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	tests := []struct {
		elapsedHours int64
		want         []int
	}{
		{elapsedHours: 6, want: []int{1, 2, 3}},
		{elapsedHours: 7, want: []int{1}},
		{elapsedHours: 0, want: []int{1, 2, 3, 4, 24}},
		{elapsedHours: 48, want: []int{1, 2, 3, 4, 24}},
		{elapsedHours: -4, want: []int{1, 2, 4}},
	}

	for _, tt := range tests {
		due, err := gateway.FindDue(ctx, tt.elapsedHours)
		if err != nil {
			t.Fatalf("FindDue(%d): %v", tt.elapsedHours, err)
		}
		got := make([]int, 0, len(due))
		for _, subscription := range due {
			if subscription.City.ID == 0 || subscription.Subscriber.Email == "" {
				t.Fatalf("FindDue(%d) without associations: %+v", tt.elapsedHours, subscription)
			}
			got = append(got, subscription.NotificationFrequency)
		}
		if fmt.Sprint(got) != fmt.Sprint(tt.want) {
			t.Errorf("FindDue(%d) frequencies = %v, want %v", tt.elapsedHours, got, tt.want)
		}
	}
}

func TestGormHealthDBGateway(t *testing.T) {
	health := NewGormHealthDBGateway(newTestDB(t)).Health(context.Background())
	if health.Status != model.StatusUp || health.Details["cities"] != "0" {
		t.Fatalf("health = %+v", health)
	}
}

// Requires postgres: RUN_INTEGRATION_TESTS=1 DATABASE_URL=postgres://...
func TestSQLCGatewaysIntegration(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "1" || os.Getenv("DATABASE_URL") == "" {
		t.Skip("set RUN_INTEGRATION_TESTS=1 and DATABASE_URL to run postgres integration tests")
	}
	ctx := context.Background()

	sqlDB, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer sqlDB.Close()

	if _, err := sqlDB.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS last_update_time (key varchar(1) PRIMARY KEY, updated timestamptz NOT NULL)`); err != nil {
		t.Fatalf("create table: %v", err)
	}

	gateway := NewSQLCLastUpdateGateway(sqlDB)
	first := time.Date(2022, 11, 14, 15, 50, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	for _, updated := range []time.Time{first, second} {
		if err := gateway.Upsert(ctx, updated); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	found, err := gateway.Find(ctx)
	if err != nil || found == nil || !found.Equal(second) {
		t.Fatalf("Find = %v, %v", found, err)
	}

	var rows int
	if err := sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM last_update_time`).Scan(&rows); err != nil || rows != 1 {
		t.Fatalf("rows = %d, %v", rows, err)
	}

	if health := NewSQLCHealthDBGateway(sqlDB).Health(ctx); health.Status != model.StatusUp {
		t.Fatalf("health = %+v", health)
	}
}
