package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxAmount is the exclusive upper bound of every stored mileage, gallon and
// dollar figure; the columns are NUMERIC(10,2).
var MaxAmount = decimal.New(1, 8)

// WithinMaxAmount reports whether d, rounded to cents, fits below MaxAmount.
func WithinMaxAmount(d decimal.Decimal) bool {
	return d.Round(2).LessThan(MaxAmount)
}

// FuelPurchase is one fuel-buying event. TripID is nil when the receipt is
// not tied to a trip; a trip has at most one linked fuel purchase.
type FuelPurchase struct {
	ID            uuid.UUID
	TripID        *uuid.UUID
	State         string
	Date          time.Time
	InvoiceNumber string
	Gallons       decimal.Decimal
	DollarAmount  decimal.Decimal
	StopName      string
	City          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
