package entity

import "time"

// Subscription links a subscriber to a city with a frequency in hours.
type Subscription struct {
	ID                    uint       `json:"id" gorm:"primaryKey"`
	SubscriberID          uint       `json:"subscriberId" gorm:"not null;uniqueIndex:idx_subscription_subscriber_city"`
	Subscriber            Subscriber `json:"subscriber" gorm:"constraint:OnDelete:CASCADE"`
	CityID                uint       `json:"cityId" gorm:"not null;uniqueIndex:idx_subscription_subscriber_city"`
	City                  City       `json:"city" gorm:"constraint:OnDelete:CASCADE"`
	NotificationFrequency int        `json:"notificationFrequency" gorm:"not null;check:chk_subscription_frequency,notification_frequency > 0"`
	CreatedAt             time.Time  `json:"createdDate"`
	UpdatedAt             time.Time  `json:"updatedDate"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
