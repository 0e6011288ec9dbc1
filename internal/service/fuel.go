package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/routr/backend/internal/domain"
	"github.com/routr/backend/internal/repo"
)

// FuelService implements business logic for fuel purchase receipts.
type FuelService struct {
	trips repo.TripRepo
	fuel  repo.FuelPurchaseRepo
}

// NewFuelService constructs a FuelService backed by the provided repos.
func NewFuelService(trips repo.TripRepo, fuel repo.FuelPurchaseRepo) *FuelService {
	return &FuelService{trips: trips, fuel: fuel}
}

// Create validates and persists a receipt.
// Returns domain.ErrNotFound if the linked trip does not exist and
// domain.ErrConflict if that trip already has a fuel purchase.
func (s *FuelService) Create(ctx context.Context, fp domain.FuelPurchase) (domain.FuelPurchase, error) {
	fp = normalizeFuel(fp)
	if err := validateFuel(fp); err != nil {
		return domain.FuelPurchase{}, err
	}
	if err := s.checkTrip(ctx, fp); err != nil {
		return domain.FuelPurchase{}, fmt.Errorf("service.FuelService.Create: %w", err)
	}
	result, err := s.fuel.Create(ctx, fp)
	if err != nil {
		return domain.FuelPurchase{}, fmt.Errorf("service.FuelService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns domain.ErrNotFound if no receipt with that ID exists.
func (s *FuelService) GetByID(ctx context.Context, id uuid.UUID) (domain.FuelPurchase, error) {
	result, err := s.fuel.GetByID(ctx, id)
	if err != nil {
		return domain.FuelPurchase{}, fmt.Errorf("service.FuelService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of receipts and the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *FuelService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.FuelPurchase, int64, error) {
	items, total, err := s.fuel.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.FuelService.ListPaged: %w", err)
	}
	if items == nil {
		items = []domain.FuelPurchase{}
	}
	return items, total, nil
}

// Update validates and overwrites a receipt. Same error contract as Create,
// plus domain.ErrNotFound when the receipt does not exist.
func (s *FuelService) Update(ctx context.Context, fp domain.FuelPurchase) (domain.FuelPurchase, error) {
	fp = normalizeFuel(fp)
	if err := validateFuel(fp); err != nil {
		return domain.FuelPurchase{}, err
	}
	if err := s.checkTrip(ctx, fp); err != nil {
		return domain.FuelPurchase{}, fmt.Errorf("service.FuelService.Update: %w", err)
	}
	result, err := s.fuel.Update(ctx, fp)
	if err != nil {
		return domain.FuelPurchase{}, fmt.Errorf("service.FuelService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a receipt. Returns domain.ErrNotFound if it does not exist.
func (s *FuelService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.fuel.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.FuelService.Delete: %w", err)
	}
	return nil
}

// checkTrip verifies the linked trip exists and is not already linked to a
// different receipt. The unique constraint on trip_id backs this up for
// concurrent writers.
func (s *FuelService) checkTrip(ctx context.Context, fp domain.FuelPurchase) error {
	if fp.TripID == nil {
		return nil
	}
	trip, err := s.trips.GetByID(ctx, *fp.TripID)
	if err != nil {
		return err
	}
	if trip.FuelPurchase != nil && trip.FuelPurchase.ID != fp.ID {
		return fmt.Errorf("%w: trip already has a fuel purchase", domain.ErrConflict)
	}
	return nil
}

func normalizeFuel(fp domain.FuelPurchase) domain.FuelPurchase {
	fp.State = strings.ToUpper(strings.TrimSpace(fp.State))
	fp.InvoiceNumber = strings.TrimSpace(fp.InvoiceNumber)
	fp.StopName = strings.TrimSpace(fp.StopName)
	fp.City = strings.TrimSpace(fp.City)
	return fp
}

// validateFuel enforces the receipt rules shared by Create and Update.
func validateFuel(fp domain.FuelPurchase) error {
	switch {
	case fp.Date.IsZero():
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	case fp.State == "":
		return fmt.Errorf("%w: state is required", domain.ErrValidation)
	case fp.InvoiceNumber == "":
		return fmt.Errorf("%w: invoice_number is required", domain.ErrValidation)
	case fp.StopName == "":
		return fmt.Errorf("%w: fuel_stop_name is required", domain.ErrValidation)
	case fp.City == "":
		return fmt.Errorf("%w: city is required", domain.ErrValidation)
	case fp.Gallons.IsNegative():
		return fmt.Errorf("%w: gallons must not be negative", domain.ErrValidation)
	case fp.DollarAmount.IsNegative():
		return fmt.Errorf("%w: dollar_amount must not be negative", domain.ErrValidation)
	case !domain.WithinMaxAmount(fp.Gallons):
		return fmt.Errorf("%w: gallons must be below %s", domain.ErrValidation, domain.MaxAmount)
	case !domain.WithinMaxAmount(fp.DollarAmount):
		return fmt.Errorf("%w: dollar_amount must be below %s", domain.ErrValidation, domain.MaxAmount)
	}
	return nil
}
