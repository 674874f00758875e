package controller

import (
	"errors"
	"net/http"

	"weather-reminder/internal/domain/gateway/api"
	"weather-reminder/internal/domain/model"
	"weather-reminder/internal/domain/usecase/subscription"
	"weather-reminder/internal/domain/usecase/weather"
	"weather-reminder/pkg/log"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var errMissingSubscriber = errors.New("X-Subscriber-Email header is required")

// errorResponse maps domain errors to their REST status.
func errorResponse(c echo.Context, err error) error {
	var (
		unresolved     *weather.UnresolvedCityCandidateError
		providerErr    *api.ProviderError
		validationErrs validator.ValidationErrors
		httpErr        *echo.HTTPError
	)

	switch {
	case errors.As(err, &unresolved):
		candidate := unresolved.Candidate
		return c.JSON(http.StatusNotFound, model.ErrorResponse{Error: err.Error(), Candidate: &candidate})
	case errors.Is(err, weather.ErrCityNotFound), errors.Is(err, subscription.ErrSubscriptionNotFound):
		return c.JSON(http.StatusNotFound, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, subscription.ErrDuplicateSubscription):
		return c.JSON(http.StatusConflict, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, weather.ErrInvalidCoordinates),
		errors.Is(err, subscription.ErrInvalidFrequency),
		errors.As(err, &validationErrs):
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, errMissingSubscriber):
		return c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: err.Error()})
	case errors.As(err, &providerErr):
		log.Warn("Weather provider error", zap.Error(err))
		return c.JSON(http.StatusBadGateway, model.ErrorResponse{Error: err.Error()})
	case errors.As(err, &httpErr):
		return c.JSON(httpErr.Code, model.ErrorResponse{Error: http.StatusText(httpErr.Code)})
	}

	log.Error("Unexpected error handling request", zap.String("uri", c.Request().RequestURI), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: message})
}
