package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stop is one customer visit within a trip.
// Position is the zero-based order of the stop inside its trip.
type Stop struct {
	ID              uuid.UUID
	TripID          uuid.UUID
	Position        int
	CustomerName    string
	CustomerAddress string
	PalletsIn       int
	PalletsOut      int
	Comments        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
