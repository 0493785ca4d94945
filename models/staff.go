package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type StaffRole string

const (
	RoleManager StaffRole = "manager"
	RoleWasher  StaffRole = "washer"
	RoleCashier StaffRole = "cashier"
)

func (r StaffRole) Valid() bool {
	switch r {
	case RoleManager, RoleWasher, RoleCashier:
		return true
	}
	return false
}

// StaffPerformance is rolled up when queue items assigned to the staff
// member complete.
type StaffPerformance struct {
	ServicesCompleted int             `json:"servicesCompleted"`
	AverageRating     float64         `json:"averageRating"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
}

type Staff struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Phone       string           `json:"phone"`
	Role        StaffRole        `json:"role"`
	IsActive    bool             `json:"isActive"`
	HireDate    time.Time        `json:"hireDate"`
	Performance StaffPerformance `json:"performance"`
}
