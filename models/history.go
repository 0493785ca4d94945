package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HistoryLine captures one serviced catalog item. Name and amount are
// snapshotted at completion time so later catalog edits or deletions never
// change what was billed.
type HistoryLine struct {
	ServiceID   uuid.UUID       `json:"serviceId"`
	ServiceName string          `json:"serviceName"`
	Amount      decimal.Decimal `json:"amount"`
}

// ServiceHistory is the append-only record of a completed queue item.
type ServiceHistory struct {
	ID          uuid.UUID       `json:"id"`
	CarID       uuid.UUID       `json:"carId"`
	Lines       []HistoryLine   `json:"lines"`
	StaffID     *uuid.UUID      `json:"staffId,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Duration    int             `json:"duration"`
	CompletedAt time.Time       `json:"completedAt"`
	Notes       string          `json:"notes,omitempty"`
	Rating      *int            `json:"rating,omitempty"`
}
