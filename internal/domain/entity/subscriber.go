package entity

import "time"

// Subscriber is the recipient of forecast emails, identified by email.
type Subscriber struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"size:254;not null;uniqueIndex"`
	CreatedAt time.Time `json:"createdDate"`
}

func (Subscriber) TableName() string {
	return "subscribers"
}
