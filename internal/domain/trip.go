// Package domain contains the core data types for the Routr logbook.
// It is imported by every other internal package (repo, service, report,
// handler) and performs no I/O.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TripRecord is one driver's single journey, bounded by a start and end
// location, time, and odometer reading. It is the top-level aggregate:
// stops belong to a trip and are created and destroyed with it.
type TripRecord struct {
	ID             uuid.UUID
	Date           time.Time
	CompanyName    string
	CompanyAddress string
	DriverName     string
	Manifest       string
	TruckNo        string
	TrailerNo      string
	StartTime      ClockTime
	EndTime        ClockTime
	StartMileage   decimal.Decimal
	EndMileage     decimal.Decimal
	StartLocation  string
	EndLocation    string

	// Stops is ordered by Position. Repo reads always populate it
	// (possibly empty); writes persist it together with the trip row.
	Stops []Stop

	// FuelPurchase is the receipt linked to this trip, if any.
	// Read-only from the trip's side; managed through the fuel purchase API.
	FuelPurchase *FuelPurchase

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Distance returns the odometer difference for the trip.
func (t TripRecord) Distance() decimal.Decimal {
	return t.EndMileage.Sub(t.StartMileage)
}
