package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"weather-reminder/internal/domain/entity"
	"weather-reminder/internal/domain/gateway/db"
	"weather-reminder/internal/domain/gateway/mail"
	"weather-reminder/internal/domain/model"
	"weather-reminder/pkg/log"
	"weather-reminder/pkg/msg"

	"go.uber.org/zap"
)

const (
	forecastSubject    = "You weather forecast."
	forecastAttachment = "forecast.json"
)

// Config holds the notification settings. A zero Epoch means DefaultEpoch.
type Config struct {
	Epoch time.Time
	From  string
}

type notificationUseCase struct {
	config              Config
	subscriptionGateway db.SubscriptionGateway
	cityGateway         db.CityGateway
	mailSender          mail.Sender
}

func NewNotificationUseCase(config Config, subscriptionGateway db.SubscriptionGateway, cityGateway db.CityGateway, mailSender mail.Sender) UseCase {
	if config.Epoch.IsZero() {
		config.Epoch = DefaultEpoch
	}
	return &notificationUseCase{
		config:              config,
		subscriptionGateway: subscriptionGateway,
		cityGateway:         cityGateway,
		mailSender:          mailSender,
	}
}

func (uc *notificationUseCase) SelectDueSubscriptions(ctx context.Context, now time.Time) ([]entity.Subscription, error) {
	due, err := uc.subscriptionGateway.FindDue(ctx, ElapsedHours(uc.config.Epoch, now))
	if err != nil {
		return nil, fmt.Errorf("failed to find due subscriptions: %w", err)
	}
	return due, nil
}

// subscriberBatch is one subscriber with the distinct cities of its due subscriptions.
type subscriberBatch struct {
	subscriber entity.Subscriber
	cities     []entity.City
}

func (uc *notificationUseCase) Notify(ctx context.Context, subscriptions []entity.Subscription) *model.NotifyReport {
	batches := groupBySubscriber(subscriptions)
	report := &model.NotifyReport{
		Subscribers: len(batches),
		Failures:    []model.DeliveryFailure{},
	}

	forecasts := make(map[uint][]entity.WeatherForecast)
	for _, batch := range batches {
		err := uc.notifySubscriber(ctx, batch, forecasts)
		if err != nil {
			report.Failures = append(report.Failures, model.DeliveryFailure{
				SubscriberID: batch.subscriber.ID,
				Email:        batch.subscriber.Email,
				Reason:       err.Error(),
			})
			log.Warn(msg.GetMessage("notification.delivery-failed", batch.subscriber.Email),
				zap.Uint("subscriber_id", batch.subscriber.ID),
				zap.Error(err))
			continue
		}
		report.Sent++
		log.Debug(msg.GetMessage("mail.sent", batch.subscriber.Email), zap.Int("cities", len(batch.cities)))
	}
	return report
}

func (uc *notificationUseCase) notifySubscriber(ctx context.Context, batch subscriberBatch, forecasts map[uint][]entity.WeatherForecast) error {
	bundle := make([]model.CityForecast, 0, len(batch.cities))
	for _, city := range batch.cities {
		cityForecasts, ok := forecasts[city.ID]
		if !ok {
			var err error
			cityForecasts, err = uc.cityGateway.FindForecastsByCityID(ctx, city.ID)
			if err != nil {
				return fmt.Errorf("failed to load forecasts of city %d: %w", city.ID, err)
			}
			forecasts[city.ID] = cityForecasts
		}
		bundle = append(bundle, model.NewCityForecast(city, cityForecasts))
	}

	content, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("failed to serialize forecast bundle: %w", err)
	}

	message := model.MailMessage{
		From:    uc.config.From,
		To:      []string{batch.subscriber.Email},
		Subject: forecastSubject,
		Attachments: []model.MailAttachment{{
			Filename:    forecastAttachment,
			ContentType: "application/json",
			Content:     content,
		}},
	}

	if err := uc.mailSender.Send(ctx, message); err != nil {
		var deliveryErr *mail.DeliveryError
		if !errors.As(err, &deliveryErr) {
			err = &mail.DeliveryError{Recipient: batch.subscriber.Email, Err: err}
		}
		return err
	}
	return nil
}

func (uc *notificationUseCase) SendWeatherForecast(ctx context.Context, requestID string, now time.Time) (*model.NotifyReport, error) {
	log.Info(msg.GetMessage("notification.start", now.UTC().Format(time.RFC3339)), zap.String("request_id", requestID))

	due, err := uc.SelectDueSubscriptions(ctx, now)
	if err != nil {
		return nil, err
	}

	report := uc.Notify(ctx, due)
	log.Info(msg.GetMessage("notification.end", report.Sent, len(report.Failures)),
		zap.String("request_id", requestID),
		zap.Int("due_subscriptions", len(due)))
	return report, nil
}

// groupBySubscriber orders subscribers by id and their cities by name, dropping duplicate cities.
func groupBySubscriber(subscriptions []entity.Subscription) []subscriberBatch {
	bySubscriber := make(map[uint]*subscriberBatch)
	seen := make(map[uint]map[uint]bool)

	for _, subscription := range subscriptions {
		subscriber := subscription.Subscriber
		if subscriber.ID == 0 {
			subscriber.ID = subscription.SubscriberID
		}
		city := subscription.City
		if city.ID == 0 {
			city.ID = subscription.CityID
		}

		batch, ok := bySubscriber[subscriber.ID]
		if !ok {
			batch = &subscriberBatch{subscriber: subscriber}
			bySubscriber[subscriber.ID] = batch
			seen[subscriber.ID] = make(map[uint]bool)
		}
		if seen[subscriber.ID][city.ID] {
			continue
		}
		seen[subscriber.ID][city.ID] = true
		batch.cities = append(batch.cities, city)
	}

	batches := make([]subscriberBatch, 0, len(bySubscriber))
	for _, batch := range bySubscriber {
		sort.Slice(batch.cities, func(i, j int) bool {
			if batch.cities[i].Name == batch.cities[j].Name {
				return batch.cities[i].ID < batch.cities[j].ID
			}
			return batch.cities[i].Name < batch.cities[j].Name
		})
		batches = append(batches, *batch)
	}
	sort.Slice(batches, func(i, j int) bool {
		return batches[i].subscriber.ID < batches[j].subscriber.ID
	})
	return batches
}
