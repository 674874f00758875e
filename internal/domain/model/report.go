package model

import "time"

// SyncReport summarizes one forecast synchronization cycle.
type SyncReport struct {
	RequestID  string        `json:"requestId,omitempty"`
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
	Processed  int           `json:"processed"`
	Updated    int           `json:"updated"`
	Failures   []CityFailure `json:"failures"`
}

type CityFailure struct {
	CityID uint   `json:"cityId"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// NotifyReport summarizes one notification run.
type NotifyReport struct {
	Subscribers int               `json:"subscribers"`
	Sent        int               `json:"sent"`
	Failures    []DeliveryFailure `json:"failures"`
}

type DeliveryFailure struct {
	SubscriberID uint   `json:"subscriberId"`
	Email        string `json:"email"`
	Reason       string `json:"reason"`
}

// LastUpdateResponse is null before the first completed synchronization.
type LastUpdateResponse struct {
	LastUpdateTime *time.Time `json:"lastUpdateTime"`
}
