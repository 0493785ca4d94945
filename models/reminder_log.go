package models

import (
	"time"

	"github.com/google/uuid"
)

// ReminderLog records one outbound re-wash reminder attempt.
type ReminderLog struct {
	ID           uuid.UUID `json:"id"`
	CustomerID   uuid.UUID `json:"customerId"`
	Message      string    `json:"message"`
	Channel      string    `json:"channel"` // sms
	Status       string    `json:"status"`  // sent, failed
	ErrorMessage string    `json:"errorMessage,omitempty"`
	SentAt       time.Time `json:"sentAt"`
}
