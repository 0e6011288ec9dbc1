// Package service contains the business logic for the Routr logbook API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/routr/backend/internal/domain"
	"github.com/routr/backend/internal/repo"
)

// TripService implements business logic for TripRecord operations.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Create validates and persists a new trip together with its stops.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, trip domain.TripRecord) (domain.TripRecord, error) {
	trip = normalizeTrip(trip)
	if err := validateTrip(trip); err != nil {
		return domain.TripRecord{}, err
	}
	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.TripRecord{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip with its stops and fuel purchase.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.TripRecord, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.TripRecord{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of trips and the total number of trips.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.TripRecord, int64, error) {
	trips, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.TripRecord{}
	}
	return trips, total, nil
}

// Update validates and overwrites an existing trip, replacing its stop list.
// Returns domain.ErrValidation for invalid input and domain.ErrNotFound if the
// trip or one of the referenced stops does not exist.
func (s *TripService) Update(ctx context.Context, trip domain.TripRecord) (domain.TripRecord, error) {
	trip = normalizeTrip(trip)
	if err := validateTrip(trip); err != nil {
		return domain.TripRecord{}, err
	}
	result, err := s.repo.Update(ctx, trip)
	if err != nil {
		return domain.TripRecord{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip. Its stops and linked fuel purchase go with it.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// UniqueLocations returns the distinct start and end locations matching query.
// The query is trimmed; an empty query lists every location.
func (s *TripService) UniqueLocations(ctx context.Context, query string) ([]string, error) {
	locations, err := s.repo.UniqueLocations(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("service.TripService.UniqueLocations: %w", err)
	}
	if locations == nil {
		locations = []string{}
	}
	return locations, nil
}

func normalizeTrip(t domain.TripRecord) domain.TripRecord {
	t.CompanyName = strings.TrimSpace(t.CompanyName)
	t.CompanyAddress = strings.TrimSpace(t.CompanyAddress)
	t.DriverName = strings.TrimSpace(t.DriverName)
	t.Manifest = strings.TrimSpace(t.Manifest)
	t.TruckNo = strings.TrimSpace(t.TruckNo)
	t.TrailerNo = strings.TrimSpace(t.TrailerNo)
	t.StartLocation = strings.TrimSpace(t.StartLocation)
	t.EndLocation = strings.TrimSpace(t.EndLocation)
	for i := range t.Stops {
		t.Stops[i] = normalizeStop(t.Stops[i])
	}
	return t
}

// validateTrip enforces business rules common to both Create and Update.
//   - Company, driver, start and end location are required.
//   - Mileage is non-negative, below domain.MaxAmount, and the trip never runs
//     the odometer backwards.
//   - Clock times are within a day.
//   - Every stop passes validateStop.
func validateTrip(t domain.TripRecord) error {
	switch {
	case t.Date.IsZero():
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	case t.CompanyName == "":
		return fmt.Errorf("%w: company_name is required", domain.ErrValidation)
	case t.DriverName == "":
		return fmt.Errorf("%w: driver_name is required", domain.ErrValidation)
	case t.StartLocation == "":
		return fmt.Errorf("%w: start_location is required", domain.ErrValidation)
	case t.EndLocation == "":
		return fmt.Errorf("%w: end_location is required", domain.ErrValidation)
	case !t.StartTime.Valid() || !t.EndTime.Valid():
		return fmt.Errorf("%w: start_time and end_time must be within a day", domain.ErrValidation)
	case t.StartMileage.IsNegative():
		return fmt.Errorf("%w: starting_mileage must not be negative", domain.ErrValidation)
	case t.EndMileage.LessThan(t.StartMileage):
		return fmt.Errorf("%w: ending_mileage must not be below starting_mileage", domain.ErrValidation)
	case !domain.WithinMaxAmount(t.EndMileage):
		return fmt.Errorf("%w: ending_mileage must be below %s", domain.ErrValidation, domain.MaxAmount)
	}
	for i, st := range t.Stops {
		if err := validateStop(st); err != nil {
			return fmt.Errorf("stops[%d]: %w", i, err)
		}
	}
	return nil
}
