package entity

import "weather-reminder/pkg/util/numberutils"

// CoordinatePrecision is the number of decimals kept for latitude and longitude.
const CoordinatePrecision = 4

// NormalizeCoordinates rounds both values to CoordinatePrecision decimals, halves away from zero.
func NormalizeCoordinates(latitude, longitude float64) (float64, float64) {
	return numberutils.RoundFloat(latitude, CoordinatePrecision), numberutils.RoundFloat(longitude, CoordinatePrecision)
}

// ValidCoordinates reports whether the pair lies inside the geographic range.
func ValidCoordinates(latitude, longitude float64) bool {
	return latitude >= -90 && latitude <= 90 && longitude >= -180 && longitude <= 180
}
