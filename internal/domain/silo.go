package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Silo is a storage facility published by an owner. TotalCapacity is fixed at
// listing time; AvailableCapacity is mutated only through the capacity ledger
// and always stays within [0, TotalCapacity].
type Silo struct {
	ID                string
	OwnerID           string
	Name              string
	Location          string
	TotalCapacity     decimal.Decimal
	AvailableCapacity decimal.Decimal
	PricePerTonne     decimal.Decimal
	CreatedAt         time.Time
}
