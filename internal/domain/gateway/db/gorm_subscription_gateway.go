package db

import (
	"context"
	"errors"

	"weather-reminder/internal/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormSubscriptionGateway struct {
	DB *gorm.DB
}

var _ SubscriptionGateway = (*GormSubscriptionGateway)(nil)

func NewGormSubscriptionGateway(db *gorm.DB) *GormSubscriptionGateway {
	return &GormSubscriptionGateway{DB: db}
}

func (gateway *GormSubscriptionGateway) preloaded(ctx context.Context) *gorm.DB {
	return gateway.DB.WithContext(ctx).Preload("Subscriber").Preload("City")
}

func (gateway *GormSubscriptionGateway) FindDue(ctx context.Context, elapsedHours int64) ([]entity.Subscription, error) {
	subscriptions := make([]entity.Subscription, 0)
	err := gateway.preloaded(ctx).
		Where("notification_frequency > 0 AND CAST(? AS BIGINT) % notification_frequency = 0", elapsedHours).
		Order("id ASC").
		Find(&subscriptions).Error
	if err != nil {
		return nil, err
	}
	return subscriptions, nil
}

func (gateway *GormSubscriptionGateway) FindBySubscriberEmail(ctx context.Context, email string) ([]entity.Subscription, error) {
	subscriptions := make([]entity.Subscription, 0)
	err := gateway.preloaded(ctx).
		Joins("JOIN subscribers ON subscribers.id = subscriptions.subscriber_id").
		Where("subscribers.email = ?", email).
		Order("subscriptions.id ASC").
		Find(&subscriptions).Error
	if err != nil {
		return nil, err
	}
	return subscriptions, nil
}

func (gateway *GormSubscriptionGateway) FindByID(ctx context.Context, id uint) (*entity.Subscription, error) {
	var subscription entity.Subscription
	err := gateway.preloaded(ctx).First(&subscription, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}

// FindOrCreateSubscriber inserts the subscriber if missing and tolerates concurrent inserts.
func (gateway *GormSubscriptionGateway) FindOrCreateSubscriber(ctx context.Context, email string) (*entity.Subscriber, error) {
	db := gateway.DB.WithContext(ctx)

	subscriber := entity.Subscriber{Email: email}
	err := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(&subscriber).Error
	if err != nil {
		return nil, translateError(err)
	}

	var stored entity.Subscriber
	if err := db.Where("email = ?", email).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (gateway *GormSubscriptionGateway) Create(ctx context.Context, subscription entity.Subscription) (*entity.Subscription, error) {
	row := entity.Subscription{
		SubscriberID:          subscription.SubscriberID,
		CityID:                subscription.CityID,
		NotificationFrequency: subscription.NotificationFrequency,
	}
	if err := gateway.DB.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return nil, translateError(err)
	}
	return gateway.FindByID(ctx, row.ID)
}

func (gateway *GormSubscriptionGateway) UpdateFrequency(ctx context.Context, id uint, frequency int) (*entity.Subscription, error) {
	result := gateway.DB.WithContext(ctx).
		Model(&entity.Subscription{}).
		Where("id = ?", id).
		Update("notification_frequency", frequency)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return gateway.FindByID(ctx, id)
}

func (gateway *GormSubscriptionGateway) DeleteByID(ctx context.Context, id uint) error {
	return gateway.DB.WithContext(ctx).Delete(&entity.Subscription{}, id).Error
}
