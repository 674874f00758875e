package entity

import "time"

// City is the canonical place record, unique by its rounded coordinates.
type City struct {
	ID               uint              `json:"id" gorm:"primaryKey"`
	Name             string            `json:"name" gorm:"size:250;not null;index"`
	CountryCode      string            `json:"countryCode" gorm:"size:2;not null"`
	Latitude         float64           `json:"latitude" gorm:"type:numeric(7,4);not null;uniqueIndex:idx_city_coordinates"`
	Longitude        float64           `json:"longitude" gorm:"type:numeric(7,4);not null;uniqueIndex:idx_city_coordinates"`
	Timezone         int               `json:"timezone" gorm:"not null;default:0"`
	WeatherForecasts []WeatherForecast `json:"weatherForecasts,omitempty" gorm:"foreignKey:CityID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time         `json:"createdDate"`
	UpdatedAt        time.Time         `json:"updatedDate"`
}

func (City) TableName() string {
	return "cities"
}

// Location returns the city's UTC offset as a fixed zone.
func (c City) Location() *time.Location {
	return time.FixedZone("", c.Timezone)
}
