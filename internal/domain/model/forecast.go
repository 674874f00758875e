package model

import "time"

// ForecastPoint is one provider measurement, translated to internal units.
type ForecastPoint struct {
	Datetime             time.Time
	Temperature          float64
	TemperatureFeelsLike float64
	Pressure             int
	Humidity             int
	Pop                  int
	Cloudiness           int
	WindSpeed            float64
	WeatherDescription   string
}

// ForecastSeries is the provider forecast of a place with the place's UTC offset in seconds.
type ForecastSeries struct {
	Timezone int
	Points   []ForecastPoint
}
