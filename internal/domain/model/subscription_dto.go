package model

import "time"

// CreateSubscriptionDTO is the body of a subscription request.
type CreateSubscriptionDTO struct {
	Latitude              *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude             *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	NotificationFrequency int      `json:"notificationFrequency" validate:"required,gte=1,lte=8760"`
}

type UpdateSubscriptionDTO struct {
	NotificationFrequency int `json:"notificationFrequency" validate:"required,gte=1,lte=8760"`
}

// SubscriptionResponse is a subscription as exposed to its subscriber.
type SubscriptionResponse struct {
	ID                    uint      `json:"id"`
	City                  CityDTO   `json:"city"`
	NotificationFrequency int       `json:"notificationFrequency"`
	CreatedAt             time.Time `json:"createdDate"`
}

type CityDTO struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	CountryCode string  `json:"countryCode"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timezone    int     `json:"timezone"`
}
