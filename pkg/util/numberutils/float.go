package numberutils

import (
	"math"
	"strconv"
)

// RoundFloat rounds value to the given number of decimal places, halves away from zero.
func RoundFloat(value float64, places int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	scale := math.Pow10(places)
	return math.Round(value*scale) / scale
}

// ToFloatWithError parses a base 10 float and rejects NaN and infinities.
func ToFloatWithError(str string) (float64, error) {
	value, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, strconv.ErrRange
	}
	return value, nil
}
