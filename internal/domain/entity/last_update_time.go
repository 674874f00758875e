package entity

import "time"

// LastUpdateKey is the primary key of the single LastUpdateTime row.
const LastUpdateKey = "-"

// LastUpdateTime records when the last synchronization cycle finished.
type LastUpdateTime struct {
	Key     string    `json:"-" gorm:"primaryKey;size:1;default:'-'"`
	Updated time.Time `json:"updated" gorm:"not null"`
}

func (LastUpdateTime) TableName() string {
	return "last_update_time"
}
