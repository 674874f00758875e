package notification

import (
	"context"
	"time"

	"weather-reminder/internal/domain/entity"
	"weather-reminder/internal/domain/model"
)

type UseCase interface {
	// SelectDueSubscriptions returns the subscriptions due at now, with subscriber and city loaded
	SelectDueSubscriptions(ctx context.Context, now time.Time) ([]entity.Subscription, error)

	// Notify sends one forecast email per subscriber. Delivery failures are reported, not returned.
	Notify(ctx context.Context, subscriptions []entity.Subscription) *model.NotifyReport

	// SendWeatherForecast selects the subscriptions due at now and notifies their subscribers
	SendWeatherForecast(ctx context.Context, requestID string, now time.Time) (*model.NotifyReport, error)
}
