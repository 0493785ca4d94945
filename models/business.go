package models

import (
	"time"

	"github.com/google/uuid"
)

// Business is one car-wash shop account, the unit of data partitioning.
// Every other collection is keyed by a business id.
type Business struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerName string    `json:"ownerName"`
	Phone     string    `json:"phone"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
