package dto

import (
	"time"

	uuid "github.com/satori/go.uuid"
)

// NotificationEvent ... User-facing event queued after a terminal state
// transition. Delivery is asynchronous and must never fail the request
// that produced it.
type NotificationEvent struct {
	EventType    string    `json:"eventType"`
	UserID       uuid.UUID `json:"userId"`
	ResourceType string    `json:"resourceType"`
	ResourceID   uuid.UUID `json:"resourceId"`
	Currency     string    `json:"currency"`
	Amount       float64   `json:"amount"`
	Message      string    `json:"message"`
	Attempts     int       `json:"attempts"`
	EnqueuedAt   time.Time `json:"enqueuedAt"`
}
