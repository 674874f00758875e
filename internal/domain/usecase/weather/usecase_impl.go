package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"weather-reminder/internal/domain/entity"
	"weather-reminder/internal/domain/gateway/api"
	"weather-reminder/internal/domain/gateway/db"
	"weather-reminder/internal/domain/model"
	"weather-reminder/pkg/log"
	"weather-reminder/pkg/msg"

	"go.uber.org/zap"
)

type weatherUseCase struct {
	batchSize         int
	apiGateway        api.WeatherGateway
	dbGateway         db.CityGateway
	lastUpdateGateway db.LastUpdateGateway
	now               func() time.Time
}

func NewWeatherUseCase(batchSize int, apiGateway api.WeatherGateway, dbGateway db.CityGateway, lastUpdateGateway db.LastUpdateGateway) UseCase {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &weatherUseCase{
		batchSize:         batchSize,
		apiGateway:        apiGateway,
		dbGateway:         dbGateway,
		lastUpdateGateway: lastUpdateGateway,
		now:               time.Now,
	}
}

// GetCity matches the normalized coordinates exactly, then falls back to the provider's nearest place
func (uc *weatherUseCase) GetCity(ctx context.Context, latitude, longitude float64) (*entity.City, error) {
	if !entity.ValidCoordinates(latitude, longitude) {
		return nil, ErrInvalidCoordinates
	}
	latitude, longitude = entity.NormalizeCoordinates(latitude, longitude)

	city, err := uc.dbGateway.FindByCoordinates(ctx, latitude, longitude)
	if err != nil {
		return nil, fmt.Errorf("failed to find city by coordinates: %w", err)
	}
	if city != nil {
		return city, nil
	}

	candidates, err := uc.apiGateway.FindCityByCoordinates(ctx, latitude, longitude)
	if err != nil {
		return nil, fmt.Errorf("failed to find city in weather provider: %w", err)
	}
	if len(candidates) == 0 {
		return nil, ErrCityNotFound
	}

	candidate := candidates[0]
	city, err = uc.dbGateway.FindByCoordinates(ctx, candidate.Latitude, candidate.Longitude)
	if err != nil {
		return nil, fmt.Errorf("failed to find city by candidate coordinates: %w", err)
	}
	if city == nil {
		return nil, &UnresolvedCityCandidateError{Candidate: candidate}
	}
	return city, nil
}

func (uc *weatherUseCase) GetOrCreateCity(ctx context.Context, latitude, longitude float64) (*entity.City, error) {
	city, err := uc.GetCity(ctx, latitude, longitude)

	var unresolved *UnresolvedCityCandidateError
	if !errors.As(err, &unresolved) {
		return city, err
	}
	return uc.CreateCity(ctx, unresolved.Candidate)
}

// CreateCity stores the candidate with its initial forecast. A concurrent insert of the
// same coordinates resolves to the city stored by the winner.
func (uc *weatherUseCase) CreateCity(ctx context.Context, candidate model.CityCandidate) (*entity.City, error) {
	candidate = model.NewCityCandidate(candidate.Name, candidate.CountryCode, candidate.Latitude, candidate.Longitude)

	series, err := uc.apiGateway.FetchForecast(ctx, candidate.Latitude, candidate.Longitude)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch initial forecast for %s: %w", candidate.Name, err)
	}

	city := entity.City{
		Name:        candidate.Name,
		CountryCode: strings.ToUpper(candidate.CountryCode),
		Latitude:    candidate.Latitude,
		Longitude:   candidate.Longitude,
		Timezone:    series.Timezone,
	}
	forecasts := toForecastEntities(series.Points)

	created, err := uc.dbGateway.CreateWithForecasts(ctx, city, forecasts)
	if errors.Is(err, db.ErrDuplicatedKey) {
		existing, findErr := uc.dbGateway.FindByCoordinates(ctx, candidate.Latitude, candidate.Longitude)
		if findErr != nil {
			return nil, fmt.Errorf("failed to find concurrently created city: %w", findErr)
		}
		if existing != nil {
			return existing, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save city %s: %w", candidate.Name, err)
	}

	log.Info(msg.GetMessage("weather.city-created", created.Name, created.CountryCode, len(forecasts)),
		zap.Uint("city_id", created.ID),
		zap.Float64("latitude", created.Latitude),
		zap.Float64("longitude", created.Longitude))
	return created, nil
}

func (uc *weatherUseCase) UpdateCityWeatherForecast(ctx context.Context, city entity.City) error {
	series, err := uc.apiGateway.FetchForecast(ctx, city.Latitude, city.Longitude)
	if err != nil {
		return fmt.Errorf("failed to fetch forecast for city %d: %w", city.ID, err)
	}

	forecasts := toForecastEntities(series.Points)
	if err := uc.dbGateway.ReplaceForecasts(ctx, city.ID, forecasts); err != nil {
		return fmt.Errorf("failed to replace forecasts for city %d: %w", city.ID, err)
	}

	log.Debug(msg.GetMessage("weather.city-updated", city.Name, len(forecasts)), zap.Uint("city_id", city.ID))
	return nil
}

// UpdateWeatherForecast walks every city with key-set pagination. A failing city is reported
// and skipped; the last update time is written once the walk is complete.
func (uc *weatherUseCase) UpdateWeatherForecast(ctx context.Context, requestID string) (*model.SyncReport, error) {
	report := &model.SyncReport{
		RequestID: requestID,
		StartedAt: uc.now().UTC(),
		Failures:  []model.CityFailure{},
	}
	log.Info(msg.GetMessage("weather.sync-start"), zap.String("request_id", requestID))

	var lastID uint
	for {
		cities, err := uc.dbGateway.FindAllWithKeysetPagination(ctx, lastID, uc.batchSize)
		if err != nil {
			log.Error("Failed to fetch cities with key-set pagination",
				zap.String("request_id", requestID),
				zap.Uint("last_id", lastID),
				zap.Error(err))
			return report, fmt.Errorf("failed to fetch cities with key-set pagination (lastID: %d): %w", lastID, err)
		}
		if len(cities) == 0 {
			break
		}

		for _, city := range cities {
			report.Processed++
			if err := uc.UpdateCityWeatherForecast(ctx, city); err != nil {
				report.Failures = append(report.Failures, model.CityFailure{CityID: city.ID, Name: city.Name, Reason: err.Error()})
				log.Warn(msg.GetMessage("weather.city-failed", city.Name),
					zap.String("request_id", requestID),
					zap.Uint("city_id", city.ID),
					zap.Error(err))
				continue
			}
			report.Updated++
		}

		lastID = cities[len(cities)-1].ID
	}

	report.FinishedAt = uc.now().UTC()
	if err := uc.lastUpdateGateway.Upsert(ctx, report.FinishedAt); err != nil {
		return report, fmt.Errorf("failed to record last update time: %w", err)
	}

	log.Info(msg.GetMessage("weather.sync-end", report.Processed, report.Updated, len(report.Failures)),
		zap.String("request_id", requestID),
		zap.Duration("duration", report.FinishedAt.Sub(report.StartedAt)))
	return report, nil
}

func (uc *weatherUseCase) FindCitiesByName(ctx context.Context, name string) ([]model.CityCandidate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("name is required")
	}

	candidates, err := uc.apiGateway.FindCitiesByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search cities in weather provider: %w", err)
	}
	return candidates, nil
}

// FindAllCities returns a page of stored cities ordered by name
func (uc *weatherUseCase) FindAllCities(ctx context.Context, page int, size int) (*model.Page[entity.City], error) {
	cities, totalElements, err := uc.fetchCitiesAndCountInParallel(ctx, page, size)
	if err != nil {
		return nil, err
	}
	return model.NewPage(cities, page, size, totalElements), nil
}

func (uc *weatherUseCase) fetchCitiesAndCountInParallel(ctx context.Context, page int, size int) ([]entity.City, int64, error) {
	var wg sync.WaitGroup
	var cities []entity.City
	var totalElements int64
	var citiesErr, countErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		cities, citiesErr = uc.dbGateway.FindAll(ctx, page, size)
	}()
	go func() {
		defer wg.Done()
		totalElements, countErr = uc.dbGateway.CountAll(ctx)
	}()
	wg.Wait()

	if citiesErr != nil {
		return nil, 0, fmt.Errorf("failed to find cities: %w", citiesErr)
	}
	if countErr != nil {
		return nil, 0, fmt.Errorf("failed to count cities: %w", countErr)
	}
	return cities, totalElements, nil
}

func (uc *weatherUseCase) GetCityForecast(ctx context.Context, latitude, longitude float64) (*model.CityForecast, error) {
	city, err := uc.GetCity(ctx, latitude, longitude)
	if err != nil {
		return nil, err
	}

	forecasts, err := uc.dbGateway.FindForecastsByCityID(ctx, city.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find forecasts for city %d: %w", city.ID, err)
	}

	cityForecast := model.NewCityForecast(*city, forecasts)
	return &cityForecast, nil
}

func (uc *weatherUseCase) GetLastUpdateTime(ctx context.Context) (*time.Time, error) {
	updated, err := uc.lastUpdateGateway.Find(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read last update time: %w", err)
	}
	return updated, nil
}

func toForecastEntities(points []model.ForecastPoint) []entity.WeatherForecast {
	forecasts := make([]entity.WeatherForecast, 0, len(points))
	for _, point := range points {
		forecasts = append(forecasts, entity.WeatherForecast{
			Datetime:             point.Datetime.UTC(),
			Temperature:          point.Temperature,
			TemperatureFeelsLike: point.TemperatureFeelsLike,
			Pressure:             point.Pressure,
			Humidity:             point.Humidity,
			Pop:                  point.Pop,
			Cloudiness:           point.Cloudiness,
			WindSpeed:            point.WindSpeed,
			WeatherDescription:   point.WeatherDescription,
		})
	}
	return forecasts
}
