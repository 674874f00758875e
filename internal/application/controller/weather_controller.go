package controller

import (
	"net/http"

	"weather-reminder/internal/domain/model"
	"weather-reminder/internal/domain/usecase/weather"

	"github.com/labstack/echo/v4"
)

// WeatherUpdateTrigger starts a synchronization outside of its schedule.
type WeatherUpdateTrigger interface {
	TriggerWeatherUpdate() error
}

type WeatherController struct {
	api     *echo.Group
	useCase weather.UseCase
	trigger WeatherUpdateTrigger
}

func NewWeatherController(api *echo.Group, useCase weather.UseCase, trigger WeatherUpdateTrigger) *WeatherController {
	return &WeatherController{api: api, useCase: useCase, trigger: trigger}
}

// InitWeatherRoutes initializes weather routes
func (controller *WeatherController) InitWeatherRoutes() {
	controller.api.POST("/weather/update", controller.UpdateWeatherForecast)
	controller.api.GET("/weather/last-update", controller.GetLastUpdateTime)
}

// UpdateWeatherForecast godoc
// @Summary Synchronize forecasts now
// @Description Run the forecast synchronization job for every city without waiting for its schedule
// @Tags weather
// @Produce json
// @Success 202 {object} model.MessageResponse "Synchronization scheduled"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /weather/update [post]
func (controller *WeatherController) UpdateWeatherForecast(c echo.Context) error {
	// The job runs on the scheduler so it never overlaps a scheduled run
	if err := controller.trigger.TriggerWeatherUpdate(); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusAccepted, model.MessageResponse{Message: "Weather forecast update scheduled successfully"})
}

// GetLastUpdateTime godoc
// @Summary Last synchronization time
// @Description Completion time of the last forecast synchronization, null before the first one
// @Tags weather
// @Produce json
// @Success 200 {object} model.LastUpdateResponse "Last completion time"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /weather/last-update [get]
func (controller *WeatherController) GetLastUpdateTime(c echo.Context) error {
	lastUpdate, err := controller.useCase.GetLastUpdateTime(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, model.LastUpdateResponse{LastUpdateTime: lastUpdate})
}
