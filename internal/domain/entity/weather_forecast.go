package entity

import "time"

// WeatherForecast is one forecast point of a city. Datetime is always UTC.
type WeatherForecast struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	CityID               uint      `json:"cityId" gorm:"not null;uniqueIndex:idx_forecast_city_datetime"`
	Datetime             time.Time `json:"datetime" gorm:"not null;uniqueIndex:idx_forecast_city_datetime"`
	Temperature          float64   `json:"temperature" gorm:"type:numeric(5,1)"`
	TemperatureFeelsLike float64   `json:"temperatureFeelsLike" gorm:"type:numeric(5,1)"`
	Pressure             int       `json:"pressure"`
	Humidity             int       `json:"humidity"`
	Pop                  int       `json:"pop"`
	Cloudiness           int       `json:"cloudiness"`
	WindSpeed            float64   `json:"windSpeed" gorm:"type:numeric(5,1)"`
	WeatherDescription   string    `json:"weatherDescription" gorm:"size:150"`
}

func (WeatherForecast) TableName() string {
	return "weather_forecasts"
}

// LocalDatetime shifts Datetime by offset seconds into a fixed zone.
func (f WeatherForecast) LocalDatetime(offset int) time.Time {
	return f.Datetime.In(time.FixedZone("", offset))
}
