package domain

import "time"

// Recipient is a member receiving event notifications
type Recipient struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// EventType is the kind of upcoming event
type EventType string

// event types known to the dispatcher
const (
	EventFair     EventType = "fair"
	EventTraining EventType = "training"
	EventProject  EventType = "project"
	EventHoliday  EventType = "holiday"
)

// NotificationEvent is an upcoming event projected from a content record
type NotificationEvent struct {
	Type        EventType
	Title       string
	Description string
	Date        time.Time
	EndDate     *time.Time
	Location    string
}

// DeliveryFailure is a failed send for one recipient
type DeliveryFailure struct {
	Recipient string `json:"recipient"`
	Error     string `json:"error"`
}

// DispatchOutcome aggregates a dispatcher run
type DispatchOutcome struct {
	Sent   int               `json:"sent"`
	Failed int               `json:"failed"`
	Errors []DeliveryFailure `json:"errors"`
}
