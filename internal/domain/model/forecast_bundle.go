package model

import (
	"time"

	"weather-reminder/internal/domain/entity"
)

// CityForecast is the notification payload entry of one city.
type CityForecast struct {
	Name        string          `json:"name"`
	CountryCode string          `json:"country_code"`
	Latitude    float64         `json:"latitude"`
	Longitude   float64         `json:"longitude"`
	Timezone    int             `json:"timezone"`
	Forecast    []ForecastEntry `json:"forecast"`
}

// ForecastEntry is one forecast point with both UTC and local timestamps.
type ForecastEntry struct {
	Datetime             string  `json:"datetime"`
	LocalDatetime        string  `json:"local_datetime"`
	Temperature          float64 `json:"temperature"`
	TemperatureFeelsLike float64 `json:"temperature_feels_like"`
	Pressure             int     `json:"pressure"`
	Humidity             int     `json:"humidity"`
	Pop                  int     `json:"pop"`
	Cloudiness           int     `json:"cloudiness"`
	WindSpeed            float64 `json:"wind_speed"`
	WeatherDescription   string  `json:"weather_description"`
}

// NewCityForecast builds the payload entry of city from its stored forecasts.
func NewCityForecast(city entity.City, forecasts []entity.WeatherForecast) CityForecast {
	entries := make([]ForecastEntry, 0, len(forecasts))
	for _, forecast := range forecasts {
		entries = append(entries, ForecastEntry{
			Datetime:             forecast.Datetime.UTC().Format(time.RFC3339),
			LocalDatetime:        forecast.LocalDatetime(city.Timezone).Format(time.RFC3339),
			Temperature:          forecast.Temperature,
			TemperatureFeelsLike: forecast.TemperatureFeelsLike,
			Pressure:             forecast.Pressure,
			Humidity:             forecast.Humidity,
			Pop:                  forecast.Pop,
			Cloudiness:           forecast.Cloudiness,
			WindSpeed:            forecast.WindSpeed,
			WeatherDescription:   forecast.WeatherDescription,
		})
	}

	return CityForecast{
		Name:        city.Name,
		CountryCode: city.CountryCode,
		Latitude:    city.Latitude,
		Longitude:   city.Longitude,
		Timezone:    city.Timezone,
		Forecast:    entries,
	}
}
