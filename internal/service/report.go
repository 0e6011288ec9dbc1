package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/routr/backend/internal/domain"
	"github.com/routr/backend/internal/repo"
	"github.com/routr/backend/internal/report"
)

// ReportGenerator produces an itinerary from prompt input.
// *report.Generator satisfies it.
type ReportGenerator interface {
	Generate(ctx context.Context, in report.Input) (domain.Report, error)
}

// TripReport is everything the report page shows for one trip.
type TripReport struct {
	Trip          domain.TripRecord
	Report        domain.Report
	FuelPurchases []domain.FuelPurchase
}

// ReportService loads a trip and asks the generator for its itinerary.
type ReportService struct {
	trips repo.TripRepo
	fuel  repo.FuelPurchaseRepo
	gen   ReportGenerator
}

// NewReportService constructs a ReportService.
func NewReportService(trips repo.TripRepo, fuel repo.FuelPurchaseRepo, gen ReportGenerator) *ReportService {
	return &ReportService{trips: trips, fuel: fuel, gen: gen}
}

// Generate builds the report for tripID. Nothing is persisted.
// Returns domain.ErrNotFound for an unknown trip, domain.ErrValidation when
// the trip has no stops, and domain.ErrUpstream when generation fails.
func (s *ReportService) Generate(ctx context.Context, tripID uuid.UUID) (TripReport, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return TripReport{}, fmt.Errorf("service.ReportService.Generate: %w", err)
	}
	if len(trip.Stops) == 0 {
		return TripReport{}, fmt.Errorf("%w: trip has no stops to report on", domain.ErrValidation)
	}

	rep, err := s.gen.Generate(ctx, report.NewInput(trip))
	if err != nil {
		return TripReport{}, fmt.Errorf("service.ReportService.Generate: %w", err)
	}

	purchases, err := s.fuel.List(ctx)
	if err != nil {
		return TripReport{}, fmt.Errorf("service.ReportService.Generate: %w", err)
	}
	if purchases == nil {
		purchases = []domain.FuelPurchase{}
	}
	return TripReport{Trip: trip, Report: rep, FuelPurchases: purchases}, nil
}
