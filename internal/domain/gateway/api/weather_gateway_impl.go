package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"weather-reminder/internal/domain/model"
	"weather-reminder/internal/domain/model/external"
	"weather-reminder/pkg/http"
	"weather-reminder/pkg/util/numberutils"

	"github.com/sony/gobreaker"
)

const (
	opFindCitiesByName      = "find cities by name"
	opFindCityByCoordinates = "find city by coordinates"
	opFetchForecast         = "fetch forecast"

	maxDescriptionLength = 150
)

// OpenWeatherConfig configures the OpenWeather geocoding and forecast clients.
type OpenWeatherConfig struct {
	APIKey         string
	GeocodingURL   string
	ForecastURL    string
	GeocodingLimit int
	Timeout        time.Duration
	// The breaker opens after BreakerFailures consecutive failures and half-opens after BreakerTimeout.
	BreakerFailures uint32
	BreakerTimeout  time.Duration
	Transport       http.ClientOptions
}

// weatherGatewayImpl implements WeatherGateway against the OpenWeather APIs.
type weatherGatewayImpl struct {
	geocodingClient *http.Client
	forecastClient  *http.Client
	geocodingLimit  int
	breaker         *gobreaker.CircuitBreaker
}

var _ WeatherGateway = (*weatherGatewayImpl)(nil)

// NewWeatherGateway creates the OpenWeather gateway.
func NewWeatherGateway(config OpenWeatherConfig) WeatherGateway {
	if config.GeocodingLimit <= 0 {
		config.GeocodingLimit = 5
	}
	if config.BreakerFailures == 0 {
		config.BreakerFailures = 5
	}
	if config.BreakerTimeout <= 0 {
		config.BreakerTimeout = time.Minute
	}

	clientOptions := config.Transport
	if config.Timeout > 0 {
		clientOptions.ReadTimeout = config.Timeout
	}
	clientOptions.DefaultQueryParams = map[string]string{"appid": config.APIKey}
	if clientOptions.Logger == nil {
		clientOptions.Logger = http.ZapLogger{Name: "openweather"}
	}

	failures := config.BreakerFailures
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 1,
		Timeout:     config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: isAvailable,
	})

	return &weatherGatewayImpl{
		geocodingClient: http.NewHttpClient(config.GeocodingURL, clientOptions),
		forecastClient:  http.NewHttpClient(config.ForecastURL, clientOptions),
		geocodingLimit:  config.GeocodingLimit,
		breaker:         breaker,
	}
}

// FindCitiesByName queries the direct geocoding endpoint.
func (g *weatherGatewayImpl) FindCitiesByName(ctx context.Context, name string) ([]model.CityCandidate, error) {
	return g.geocode(ctx, opFindCitiesByName, "direct", map[string]string{
		"q":     name,
		"limit": strconv.Itoa(g.geocodingLimit),
	})
}

// FindCityByCoordinates queries the reverse geocoding endpoint.
func (g *weatherGatewayImpl) FindCityByCoordinates(ctx context.Context, latitude, longitude float64) ([]model.CityCandidate, error) {
	return g.geocode(ctx, opFindCityByCoordinates, "reverse", map[string]string{
		"lat": formatCoordinate(latitude),
		"lon": formatCoordinate(longitude),
	})
}

// FetchForecast queries the forecast endpoint in metric units.
func (g *weatherGatewayImpl) FetchForecast(ctx context.Context, latitude, longitude float64) (*model.ForecastSeries, error) {
	result, err := g.execute(opFetchForecast, func() (any, error) {
		successResp, errResp, status, err := g.forecastClient.Request().
			WithContext(ctx).
			WithMethod(http.GET).
			WithQueryParams(map[string]string{
				"lat":   formatCoordinate(latitude),
				"lon":   formatCoordinate(longitude),
				"units": "metric",
			}).
			WithSuccessResp(&external.ForecastResponse{}).
			WithErrorResp(&external.ErrorResponse{}).
			Execute()
		if err != nil {
			return nil, newRequestError(opFetchForecast, status, errResp, err)
		}
		return toForecastSeries(successResp.(*external.ForecastResponse))
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.ForecastSeries), nil
}

func (g *weatherGatewayImpl) geocode(ctx context.Context, operation, path string, params map[string]string) ([]model.CityCandidate, error) {
	result, err := g.execute(operation, func() (any, error) {
		var raw json.RawMessage
		_, errResp, status, err := g.geocodingClient.Request().
			WithContext(ctx).
			WithMethod(http.GET).
			WithPath(path).
			WithQueryParams(params).
			WithSuccessResp(&raw).
			WithErrorResp(&external.ErrorResponse{}).
			Execute()
		if err != nil {
			return nil, newRequestError(operation, status, errResp, err)
		}
		return toCityCandidates(operation, raw)
	})
	if err != nil {
		return nil, err
	}
	return result.([]model.CityCandidate), nil
}

// execute runs call through the circuit breaker and guarantees a *ProviderError on failure.
func (g *weatherGatewayImpl) execute(operation string, call func() (any, error)) (any, error) {
	result, err := g.breaker.Execute(call)
	if err == nil {
		return result, nil
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return nil, err
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &ProviderError{Operation: operation, Message: "provider temporarily unavailable", Unavailable: true, Err: err}
	}
	return nil, &ProviderError{Operation: operation, Message: err.Error(), Err: err}
}

// isAvailable reports whether the provider answered, even with an error-coded answer for one city.
func isAvailable(err error) bool {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return !providerErr.Unavailable
	}
	return err == nil
}

// newRequestError keeps no status for 2xx answers, those fail on a malformed body.
func newRequestError(operation string, status int, errResp any, err error) *ProviderError {
	providerErr := &ProviderError{Operation: operation, Message: err.Error(), Err: err}
	switch {
	case status == 0:
		providerErr.Unavailable = true
	case status < 200 || status >= 300:
		providerErr.StatusCode = status
		providerErr.Unavailable = status >= 500
	}
	if body, ok := errResp.(*external.ErrorResponse); ok && body != nil && body.Message != "" {
		providerErr.Message = body.Message.String()
	}
	return providerErr
}

// toCityCandidates decodes a geocoding answer, which is either a list or an error object.
func toCityCandidates(operation string, raw json.RawMessage) ([]model.CityCandidate, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, &ProviderError{Operation: operation, Message: "empty geocoding response"}
	}

	if trimmed[0] == '{' {
		var errorBody external.ErrorResponse
		if err := json.Unmarshal(trimmed, &errorBody); err != nil {
			return nil, &ProviderError{Operation: operation, Message: "malformed geocoding response", Err: err}
		}
		status, _ := strconv.Atoi(errorBody.StatusCode())
		return nil, &ProviderError{Operation: operation, StatusCode: status, Message: errorBody.Message.String(), Unavailable: status >= 500}
	}

	var results []external.GeocodingResult
	if err := json.Unmarshal(trimmed, &results); err != nil {
		return nil, &ProviderError{Operation: operation, Message: "malformed geocoding response", Err: err}
	}

	candidates := make([]model.CityCandidate, 0, len(results))
	for i, result := range results {
		if result.Name == "" || result.Lat == nil || result.Lon == nil {
			return nil, &ProviderError{Operation: operation, Message: fmt.Sprintf("geocoding result %d is missing name or coordinates", i)}
		}
		candidates = append(candidates, model.NewCityCandidate(result.Name, result.Country, *result.Lat, *result.Lon))
	}
	return candidates, nil
}

func toForecastSeries(response *external.ForecastResponse) (*model.ForecastSeries, error) {
	if !response.Successful() {
		status, _ := strconv.Atoi(response.Cod.String())
		return nil, &ProviderError{Operation: opFetchForecast, StatusCode: status, Message: response.Message.String(), Unavailable: status >= 500}
	}
	if response.City == nil || response.City.Timezone == nil {
		return nil, &ProviderError{Operation: opFetchForecast, Message: "forecast response has no city timezone"}
	}

	byDatetime := make(map[int64]model.ForecastPoint, len(response.List))
	for i, item := range response.List {
		if item.Dt == nil || item.Main == nil {
			return nil, &ProviderError{Operation: opFetchForecast, Message: fmt.Sprintf("forecast item %d is missing dt or main", i)}
		}
		byDatetime[*item.Dt] = toForecastPoint(item)
	}

	points := make([]model.ForecastPoint, 0, len(byDatetime))
	for _, point := range byDatetime {
		points = append(points, point)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Datetime.Before(points[j].Datetime)
	})

	return &model.ForecastSeries{Timezone: *response.City.Timezone, Points: points}, nil
}

func toForecastPoint(item external.ForecastItem) model.ForecastPoint {
	descriptions := make([]string, 0, len(item.Weather))
	for _, weather := range item.Weather {
		descriptions = append(descriptions, weather.Main+": "+weather.Description)
	}

	return model.ForecastPoint{
		Datetime:             time.Unix(*item.Dt, 0).UTC(),
		Temperature:          numberutils.RoundFloat(item.Main.Temp, 1),
		TemperatureFeelsLike: numberutils.RoundFloat(item.Main.FeelsLike, 1),
		Pressure:             item.Main.Pressure,
		Humidity:             item.Main.Humidity,
		Pop:                  int(math.Round(item.Pop * 100)),
		Cloudiness:           item.Clouds.All,
		WindSpeed:            numberutils.RoundFloat(item.Wind.Speed, 1),
		WeatherDescription:   truncate(strings.Join(descriptions, "; "), maxDescriptionLength),
	}
}

func truncate(value string, maxRunes int) string {
	if utf8.RuneCountInString(value) <= maxRunes {
		return value
	}
	return string([]rune(value)[:maxRunes])
}

func formatCoordinate(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
