package models

import (
	"time"

	"github.com/google/uuid"
)

type QueueStatus string

const (
	StatusWaiting    QueueStatus = "waiting"
	StatusInProgress QueueStatus = "in_progress"
	StatusCompleted  QueueStatus = "completed"
)

func (s QueueStatus) Valid() bool {
	switch s {
	case StatusWaiting, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// QueueItem is one car's in-flight service request. Status only ever moves
// waiting -> in_progress -> completed; completed is terminal.
type QueueItem struct {
	ID               uuid.UUID   `json:"id"`
	CarID            uuid.UUID   `json:"carId"`
	ServiceIDs       []uuid.UUID `json:"serviceIds"`
	Status           QueueStatus `json:"status"`
	EstimatedTime    int         `json:"estimatedTime"`
	EstimateDegraded bool        `json:"estimateDegraded,omitempty"`
	StartTime        *time.Time  `json:"startTime,omitempty"`
	CompletedTime    *time.Time  `json:"completedTime,omitempty"`
	AssignedStaff    *uuid.UUID  `json:"assignedStaff,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// ActualDuration returns the elapsed service minutes when both timestamps are
// present, falling back to the enqueue-time estimate.
func (q *QueueItem) ActualDuration() int {
	if q.StartTime != nil && q.CompletedTime != nil {
		return int(q.CompletedTime.Sub(*q.StartTime).Minutes())
	}
	return q.EstimatedTime
}
