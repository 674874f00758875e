package controller

import (
	"net/http"
	"strings"

	"weather-reminder/internal/domain/model"
	"weather-reminder/internal/domain/usecase/subscription"
	"weather-reminder/pkg/util/numberutils"

	"github.com/labstack/echo/v4"
)

// SubscriberHeader identifies the subscriber of every subscription request.
const SubscriberHeader = "X-Subscriber-Email"

type subscriberIdentity struct {
	Email string `validate:"required,email,max=255"`
}

type SubscriptionController struct {
	api     *echo.Group
	useCase subscription.UseCase
}

func NewSubscriptionController(api *echo.Group, useCase subscription.UseCase) *SubscriptionController {
	return &SubscriptionController{api: api, useCase: useCase}
}

// InitSubscriptionRoutes initializes subscription routes
func (controller *SubscriptionController) InitSubscriptionRoutes() {
	controller.api.GET("/subscriptions", controller.FindAll)
	controller.api.POST("/subscriptions", controller.Create)
	controller.api.GET("/subscriptions/:id", controller.FindByID)
	controller.api.PUT("/subscriptions/:id", controller.UpdateFrequency)
	controller.api.DELETE("/subscriptions/:id", controller.Delete)
}

// FindAll godoc
// @Summary List subscriptions
// @Description List the subscriptions of the subscriber
// @Tags subscriptions
// @Produce json
// @Param X-Subscriber-Email header string true "Subscriber email"
// @Success 200 {array} model.SubscriptionResponse "Subscriptions"
// @Failure 401 {object} model.ErrorResponse "Missing subscriber"
// @Router /subscriptions [get]
func (controller *SubscriptionController) FindAll(c echo.Context) error {
	email, err := subscriberEmail(c)
	if err != nil {
		return errorResponse(c, err)
	}

	subscriptions, err := controller.useCase.FindAll(c.Request().Context(), email)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, subscriptions)
}

// Create godoc
// @Summary Subscribe to a city
// @Description Subscribe to the forecast of the city at the coordinates, registering the city when needed
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param X-Subscriber-Email header string true "Subscriber email"
// @Param subscription body model.CreateSubscriptionDTO true "Coordinates and frequency in hours"
// @Success 201 {object} model.SubscriptionResponse "Subscription created"
// @Failure 400 {object} model.ErrorResponse "Invalid request body"
// @Failure 401 {object} model.ErrorResponse "Missing subscriber"
// @Failure 404 {object} model.ErrorResponse "No place at the coordinates"
// @Failure 409 {object} model.ErrorResponse "Already subscribed to the city"
// @Failure 502 {object} model.ErrorResponse "Weather provider error"
// @Router /subscriptions [post]
func (controller *SubscriptionController) Create(c echo.Context) error {
	email, err := subscriberEmail(c)
	if err != nil {
		return errorResponse(c, err)
	}

	var dto model.CreateSubscriptionDTO
	if err := c.Bind(&dto); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&dto); err != nil {
		return errorResponse(c, err)
	}

	created, err := controller.useCase.Create(c.Request().Context(), email, dto)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// FindByID godoc
// @Summary Get a subscription
// @Tags subscriptions
// @Produce json
// @Param X-Subscriber-Email header string true "Subscriber email"
// @Param id path int true "Subscription id"
// @Success 200 {object} model.SubscriptionResponse "Subscription"
// @Failure 404 {object} model.ErrorResponse "Subscription not found"
// @Router /subscriptions/{id} [get]
func (controller *SubscriptionController) FindByID(c echo.Context) error {
	email, id, err := subscriberAndID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	found, err := controller.useCase.FindByID(c.Request().Context(), email, id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, found)
}

// UpdateFrequency godoc
// @Summary Change the notification frequency
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param X-Subscriber-Email header string true "Subscriber email"
// @Param id path int true "Subscription id"
// @Param subscription body model.UpdateSubscriptionDTO true "Frequency in hours"
// @Success 200 {object} model.SubscriptionResponse "Subscription updated"
// @Failure 400 {object} model.ErrorResponse "Invalid request body"
// @Failure 404 {object} model.ErrorResponse "Subscription not found"
// @Router /subscriptions/{id} [put]
func (controller *SubscriptionController) UpdateFrequency(c echo.Context) error {
	email, id, err := subscriberAndID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	var dto model.UpdateSubscriptionDTO
	if err := c.Bind(&dto); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(&dto); err != nil {
		return errorResponse(c, err)
	}

	updated, err := controller.useCase.UpdateFrequency(c.Request().Context(), email, id, dto.NotificationFrequency)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Unsubscribe
// @Tags subscriptions
// @Param X-Subscriber-Email header string true "Subscriber email"
// @Param id path int true "Subscription id"
// @Success 204 "Subscription removed"
// @Failure 404 {object} model.ErrorResponse "Subscription not found"
// @Router /subscriptions/{id} [delete]
func (controller *SubscriptionController) Delete(c echo.Context) error {
	email, id, err := subscriberAndID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	if err := controller.useCase.Delete(c.Request().Context(), email, id); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func subscriberEmail(c echo.Context) (string, error) {
	email := strings.TrimSpace(c.Request().Header.Get(SubscriberHeader))
	if email == "" {
		return "", errMissingSubscriber
	}
	if err := c.Validate(&subscriberIdentity{Email: email}); err != nil {
		return "", err
	}
	return email, nil
}

func subscriberAndID(c echo.Context) (string, uint, error) {
	email, err := subscriberEmail(c)
	if err != nil {
		return "", 0, err
	}
	id, err := numberutils.ToIntWithError(c.Param("id"))
	if err != nil || id <= 0 {
		return "", 0, subscription.ErrSubscriptionNotFound
	}
	return email, uint(id), nil
}
