package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ServiceCategory string

const (
	CategoryBasic   ServiceCategory = "basic"
	CategoryPremium ServiceCategory = "premium"
	CategoryPackage ServiceCategory = "package"
)

func (c ServiceCategory) Valid() bool {
	switch c {
	case CategoryBasic, CategoryPremium, CategoryPackage:
		return true
	}
	return false
}

type CarSize string

const (
	SizeCompact CarSize = "compact"
	SizeSUV     CarSize = "suv"
	SizeTruck   CarSize = "truck"
)

func (s CarSize) Valid() bool {
	switch s {
	case SizeCompact, SizeSUV, SizeTruck:
		return true
	}
	return false
}

// Service is a catalog item: one offered wash/detail with a fixed price and
// an expected duration in minutes.
type Service struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Duration  int             `json:"duration"`
	Category  ServiceCategory `json:"category"`
	CarSizes  []CarSize       `json:"carSizes"`
	CreatedAt time.Time       `json:"createdAt"`
}
