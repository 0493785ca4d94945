package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is synthesized from car owner records by phone number rather than
// registered directly; one customer per normalized phone per business.
type Customer struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	Email         string      `json:"email,omitempty"`
	LoyaltyPoints int         `json:"loyaltyPoints"`
	TotalVisits   int         `json:"totalVisits"`
	LastVisit     *time.Time  `json:"lastVisit,omitempty"`
	Cars          []uuid.UUID `json:"cars"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// HasCar reports whether the car is already linked.
func (c *Customer) HasCar(carID uuid.UUID) bool {
	for _, id := range c.Cars {
		if id == carID {
			return true
		}
	}
	return false
}
