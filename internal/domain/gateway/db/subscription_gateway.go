package db

import (
	"context"

	"weather-reminder/internal/domain/entity"
)

type SubscriptionGateway interface {
	// FindDue returns the subscriptions whose frequency divides elapsedHours, with subscriber and city loaded.
	FindDue(ctx context.Context, elapsedHours int64) ([]entity.Subscription, error)
	FindBySubscriberEmail(ctx context.Context, email string) ([]entity.Subscription, error)
	FindByID(ctx context.Context, id uint) (*entity.Subscription, error)

	FindOrCreateSubscriber(ctx context.Context, email string) (*entity.Subscriber, error)

	// Create returns ErrDuplicatedKey when the subscriber already follows the city.
	Create(ctx context.Context, subscription entity.Subscription) (*entity.Subscription, error)
	UpdateFrequency(ctx context.Context, id uint, frequency int) (*entity.Subscription, error)
	DeleteByID(ctx context.Context, id uint) error
}
