package subscription

import (
	"context"
	"errors"

	"weather-reminder/internal/domain/model"
)

var (
	// ErrDuplicateSubscription means the subscriber already follows the city.
	ErrDuplicateSubscription = errors.New("subscription to this city already exists")

	// ErrSubscriptionNotFound is also returned for subscriptions owned by another subscriber.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	ErrInvalidFrequency = errors.New("notification frequency must be a positive number of hours")
)

type UseCase interface {
	FindAll(ctx context.Context, email string) ([]model.SubscriptionResponse, error)
	FindByID(ctx context.Context, email string, id uint) (*model.SubscriptionResponse, error)

	// Create resolves the coordinates to a city, creating it when the provider knows the place
	Create(ctx context.Context, email string, request model.CreateSubscriptionDTO) (*model.SubscriptionResponse, error)
	UpdateFrequency(ctx context.Context, email string, id uint, frequency int) (*model.SubscriptionResponse, error)
	Delete(ctx context.Context, email string, id uint) error
}
