package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/routr/backend/internal/domain"
	"github.com/routr/backend/internal/repo"
)

// ExportService assembles a full flat export of all trips, stops, and fuel purchases.
type ExportService struct {
	trips repo.TripRepo
	fuel  repo.FuelPurchaseRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, fuel repo.FuelPurchaseRepo) *ExportService {
	return &ExportService{trips: trips, fuel: fuel}
}

// Export returns one ExportRow per stop across all trips, in trip order then
// stop order. Trips with no stops contribute one row with empty stop fields.
// Always returns a non-nil slice.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	purchases, err := s.fuel.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	byTrip := make(map[uuid.UUID]domain.FuelPurchase, len(purchases))
	for _, fp := range purchases {
		if fp.TripID != nil {
			byTrip[*fp.TripID] = fp
		}
	}

	rows := []domain.ExportRow{}
	for _, trip := range trips {
		base := domain.ExportRow{
			TripID:        trip.ID.String(),
			TripDate:      trip.Date.Format("2006-01-02"),
			CompanyName:   trip.CompanyName,
			DriverName:    trip.DriverName,
			TruckNo:       trip.TruckNo,
			TrailerNo:     trip.TrailerNo,
			StartLocation: trip.StartLocation,
			EndLocation:   trip.EndLocation,
			StartMileage:  trip.StartMileage.StringFixed(2),
			EndMileage:    trip.EndMileage.StringFixed(2),
		}
		if fp, ok := byTrip[trip.ID]; ok {
			base.FuelInvoice = fp.InvoiceNumber
			base.FuelGallons = fp.Gallons.StringFixed(2)
			base.FuelDollars = fp.DollarAmount.StringFixed(2)
		}

		if len(trip.Stops) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, st := range trip.Stops {
			row := base
			row.StopPosition = st.Position
			row.CustomerName = st.CustomerName
			row.CustomerAddress = st.CustomerAddress
			row.PalletsIn = st.PalletsIn
			row.PalletsOut = st.PalletsOut
			row.StopComments = st.Comments
			rows = append(rows, row)
		}
	}
	return rows, nil
}
