package controller

import (
	"net/http"
	"strings"

	"weather-reminder/internal/domain/usecase/weather"
	"weather-reminder/pkg/util/numberutils"

	"github.com/labstack/echo/v4"
)

const maxPageSize = 100

type CityController struct {
	api     *echo.Group
	useCase weather.UseCase
}

func NewCityController(api *echo.Group, useCase weather.UseCase) *CityController {
	return &CityController{api: api, useCase: useCase}
}

// InitCityRoutes initializes city routes
func (controller *CityController) InitCityRoutes() {
	controller.api.GET("/cities", controller.FindAllCities)
	controller.api.GET("/cities/search", controller.FindCitiesByName)
	controller.api.GET("/cities/forecast", controller.GetCityForecast)
}

// FindAllCities godoc
// @Summary Get all known cities
// @Description Retrieve the registered cities ordered by name
// @Tags cities
// @Produce json
// @Param page query int false "Page number" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} model.Page[entity.City] "Paginated list of cities"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /cities [get]
func (controller *CityController) FindAllCities(c echo.Context) error {
	var page int = numberutils.ToIntWithDefault(c.QueryParam("page"), 0)
	var size int = numberutils.ToIntWithDefault(c.QueryParam("size"), 10)

	cities, err := controller.useCase.FindAllCities(c.Request().Context(), max(page, 0), numberutils.Clamp(size, 1, maxPageSize))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, cities)
}

// FindCitiesByName godoc
// @Summary Search cities by name
// @Description Ask the weather provider for places matching the name
// @Tags cities
// @Produce json
// @Param name query string true "City name"
// @Success 200 {array} model.CityCandidate "Matching places with normalized coordinates"
// @Failure 400 {object} model.ErrorResponse "Missing name"
// @Failure 502 {object} model.ErrorResponse "Weather provider error"
// @Router /cities/search [get]
func (controller *CityController) FindCitiesByName(c echo.Context) error {
	name := strings.TrimSpace(c.QueryParam("name"))
	if name == "" {
		return badRequest(c, "name is required")
	}

	candidates, err := controller.useCase.FindCitiesByName(c.Request().Context(), name)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, candidates)
}

// GetCityForecast godoc
// @Summary Get the forecast of a city
// @Description Return the stored forecast of the registered city at the coordinates
// @Tags cities
// @Produce json
// @Param latitude query number true "Latitude"
// @Param longitude query number true "Longitude"
// @Success 200 {object} model.CityForecast "Stored forecast"
// @Failure 400 {object} model.ErrorResponse "Invalid coordinates"
// @Failure 404 {object} model.ErrorResponse "City not registered, with the provider candidate when one exists"
// @Failure 502 {object} model.ErrorResponse "Weather provider error"
// @Router /cities/forecast [get]
func (controller *CityController) GetCityForecast(c echo.Context) error {
	latitude, err := numberutils.ToFloatWithError(c.QueryParam("latitude"))
	if err != nil {
		return badRequest(c, "latitude must be a number")
	}
	longitude, err := numberutils.ToFloatWithError(c.QueryParam("longitude"))
	if err != nil {
		return badRequest(c, "longitude must be a number")
	}

	forecast, err := controller.useCase.GetCityForecast(c.Request().Context(), latitude, longitude)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, forecast)
}
