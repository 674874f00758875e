package api

import (
	"context"
	"strings"

	"weather-reminder/internal/domain/model"
	"weather-reminder/pkg/log"

	"go.uber.org/zap"
)

// Cache is the key/value store used to memoize geocoding answers.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
}

// cachedWeatherGateway memoizes geocoding lookups. Forecasts always go to the provider.
type cachedWeatherGateway struct {
	next  WeatherGateway
	cache Cache
}

var _ WeatherGateway = (*cachedWeatherGateway)(nil)

func NewCachedWeatherGateway(next WeatherGateway, cache Cache) WeatherGateway {
	return &cachedWeatherGateway{next: next, cache: cache}
}

func (g *cachedWeatherGateway) FindCitiesByName(ctx context.Context, name string) ([]model.CityCandidate, error) {
	key := "direct::" + strings.ToLower(strings.TrimSpace(name))
	return g.cached(ctx, key, func() ([]model.CityCandidate, error) {
		return g.next.FindCitiesByName(ctx, name)
	})
}

func (g *cachedWeatherGateway) FindCityByCoordinates(ctx context.Context, latitude, longitude float64) ([]model.CityCandidate, error) {
	key := "reverse::" + formatCoordinate(latitude) + "," + formatCoordinate(longitude)
	return g.cached(ctx, key, func() ([]model.CityCandidate, error) {
		return g.next.FindCityByCoordinates(ctx, latitude, longitude)
	})
}

func (g *cachedWeatherGateway) FetchForecast(ctx context.Context, latitude, longitude float64) (*model.ForecastSeries, error) {
	return g.next.FetchForecast(ctx, latitude, longitude)
}

// cached never fails because of the cache itself; read and write errors are logged and skipped.
func (g *cachedWeatherGateway) cached(ctx context.Context, key string, load func() ([]model.CityCandidate, error)) ([]model.CityCandidate, error) {
	var candidates []model.CityCandidate
	found, err := g.cache.Get(ctx, key, &candidates)
	if err != nil {
		log.Warn("Geocoding cache read failed", zap.String("key", key), zap.Error(err))
	}
	if found {
		return candidates, nil
	}

	candidates, err = load()
	if err != nil {
		return nil, err
	}
	// Empty answers are not cached so that newly indexed places show up.
	if len(candidates) > 0 {
		if err := g.cache.Set(ctx, key, candidates); err != nil {
			log.Warn("Geocoding cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return candidates, nil
}
