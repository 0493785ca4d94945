package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxCarImages caps the embedded image URLs per car.
const MaxCarImages = 4

type CarOwner struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Car is a vehicle registered with the shop. Duplicate license plates are
// tolerated; cars and customers are soft-linked by owner phone number.
type Car struct {
	ID           uuid.UUID  `json:"id"`
	LicensePlate string     `json:"licensePlate"`
	Make         string     `json:"make"`
	Color        string     `json:"color"`
	Images       []string   `json:"images"`
	Owner        CarOwner   `json:"owner"`
	CustomerID   *uuid.UUID `json:"customerId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
