package subscription

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"weather-reminder/internal/domain/entity"
	"weather-reminder/internal/domain/gateway/db"
	"weather-reminder/internal/domain/model"
	"weather-reminder/internal/domain/usecase/weather"
	"weather-reminder/pkg/log"

	"go.uber.org/zap"
)

type subscriptionUseCase struct {
	dbGateway      db.SubscriptionGateway
	weatherUseCase weather.UseCase
}

func NewSubscriptionUseCase(dbGateway db.SubscriptionGateway, weatherUseCase weather.UseCase) UseCase {
	return &subscriptionUseCase{
		dbGateway:      dbGateway,
		weatherUseCase: weatherUseCase,
	}
}

func (uc *subscriptionUseCase) FindAll(ctx context.Context, email string) ([]model.SubscriptionResponse, error) {
	subscriptions, err := uc.dbGateway.FindBySubscriberEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to find subscriptions: %w", err)
	}

	responses := make([]model.SubscriptionResponse, 0, len(subscriptions))
	for _, subscription := range subscriptions {
		responses = append(responses, toResponse(subscription))
	}
	return responses, nil
}

func (uc *subscriptionUseCase) FindByID(ctx context.Context, email string, id uint) (*model.SubscriptionResponse, error) {
	subscription, err := uc.findOwned(ctx, email, id)
	if err != nil {
		return nil, err
	}
	response := toResponse(*subscription)
	return &response, nil
}

func (uc *subscriptionUseCase) Create(ctx context.Context, email string, request model.CreateSubscriptionDTO) (*model.SubscriptionResponse, error) {
	if request.Latitude == nil || request.Longitude == nil {
		return nil, weather.ErrInvalidCoordinates
	}
	if request.NotificationFrequency <= 0 {
		return nil, ErrInvalidFrequency
	}

	city, err := uc.weatherUseCase.GetOrCreateCity(ctx, *request.Latitude, *request.Longitude)
	if err != nil {
		return nil, err
	}

	subscriber, err := uc.dbGateway.FindOrCreateSubscriber(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to find or create subscriber: %w", err)
	}

	created, err := uc.dbGateway.Create(ctx, entity.Subscription{
		SubscriberID:          subscriber.ID,
		CityID:                city.ID,
		NotificationFrequency: request.NotificationFrequency,
	})
	if errors.Is(err, db.ErrDuplicatedKey) {
		return nil, ErrDuplicateSubscription
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	log.Info("Subscription created",
		zap.Uint("subscription_id", created.ID),
		zap.Uint("subscriber_id", subscriber.ID),
		zap.Uint("city_id", city.ID),
		zap.Int("notification_frequency", created.NotificationFrequency))

	response := toResponse(*created)
	return &response, nil
}

func (uc *subscriptionUseCase) UpdateFrequency(ctx context.Context, email string, id uint, frequency int) (*model.SubscriptionResponse, error) {
	if frequency <= 0 {
		return nil, ErrInvalidFrequency
	}
	if _, err := uc.findOwned(ctx, email, id); err != nil {
		return nil, err
	}

	updated, err := uc.dbGateway.UpdateFrequency(ctx, id, frequency)
	if err != nil {
		return nil, fmt.Errorf("failed to update subscription %d: %w", id, err)
	}
	if updated == nil {
		return nil, ErrSubscriptionNotFound
	}

	response := toResponse(*updated)
	return &response, nil
}

func (uc *subscriptionUseCase) Delete(ctx context.Context, email string, id uint) error {
	if _, err := uc.findOwned(ctx, email, id); err != nil {
		return err
	}
	if err := uc.dbGateway.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete subscription %d: %w", id, err)
	}
	return nil
}

func (uc *subscriptionUseCase) findOwned(ctx context.Context, email string, id uint) (*entity.Subscription, error) {
	subscription, err := uc.dbGateway.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find subscription %d: %w", id, err)
	}
	if subscription == nil || subscription.Subscriber.Email != normalizeEmail(email) {
		return nil, ErrSubscriptionNotFound
	}
	return subscription, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toResponse(subscription entity.Subscription) model.SubscriptionResponse {
	city := subscription.City
	return model.SubscriptionResponse{
		ID: subscription.ID,
		City: model.CityDTO{
			ID:          city.ID,
			Name:        city.Name,
			CountryCode: city.CountryCode,
			Latitude:    city.Latitude,
			Longitude:   city.Longitude,
			Timezone:    city.Timezone,
		},
		NotificationFrequency: subscription.NotificationFrequency,
		CreatedAt:             subscription.CreatedAt,
	}
}
