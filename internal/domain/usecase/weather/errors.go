package weather

import (
	"errors"
	"fmt"

	"weather-reminder/internal/domain/model"
)

var (
	// ErrCityNotFound means neither storage nor the provider know a place at the coordinates.
	ErrCityNotFound = errors.New("city not found")

	ErrInvalidCoordinates = errors.New("latitude must be within [-90, 90] and longitude within [-180, 180]")
)

// UnresolvedCityCandidateError means the provider knows a place that is not stored yet.
type UnresolvedCityCandidateError struct {
	Candidate model.CityCandidate
}

func (e *UnresolvedCityCandidateError) Error() string {
	return fmt.Sprintf("city %s (%s) at %.4f,%.4f is not registered",
		e.Candidate.Name, e.Candidate.CountryCode, e.Candidate.Latitude, e.Candidate.Longitude)
}
