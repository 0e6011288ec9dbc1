package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/routr/backend/internal/domain"
	"github.com/routr/backend/internal/repo"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	create          func(ctx context.Context, trip domain.TripRecord) (domain.TripRecord, error)
	getByID         func(ctx context.Context, id uuid.UUID) (domain.TripRecord, error)
	listPaged       func(ctx context.Context, p domain.PaginationParams) ([]domain.TripRecord, int64, error)
	list            func(ctx context.Context) ([]domain.TripRecord, error)
	update          func(ctx context.Context, trip domain.TripRecord) (domain.TripRecord, error)
	delete          func(ctx context.Context, id uuid.UUID) error
	uniqueLocations func(ctx context.Context, query string) ([]string, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.TripRecord) (domain.TripRecord, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.TripRecord, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.TripRecord, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripRepo) List(ctx context.Context) ([]domain.TripRecord, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.TripRecord) (domain.TripRecord, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripRepo) UniqueLocations(ctx context.Context, query string) ([]string, error) {
	return m.uniqueLocations(ctx, query)
}

// mockStopRepo is a hand-written test double for repo.StopRepo.
type mockStopRepo struct {
	create       func(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	getByID      func(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)
	update       func(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	delete       func(ctx context.Context, tripID, stopID uuid.UUID) error
}

func (m *mockStopRepo) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	return m.create(ctx, stop)
}
func (m *mockStopRepo) GetByID(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error) {
	return m.getByID(ctx, tripID, stopID)
}
func (m *mockStopRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockStopRepo) Update(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	return m.update(ctx, stop)
}
func (m *mockStopRepo) Delete(ctx context.Context, tripID, stopID uuid.UUID) error {
	return m.delete(ctx, tripID, stopID)
}

// mockFuelRepo is a hand-written test double for repo.FuelPurchaseRepo.
type mockFuelRepo struct {
	create    func(ctx context.Context, fp domain.FuelPurchase) (domain.FuelPurchase, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.FuelPurchase, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.FuelPurchase, int64, error)
	list      func(ctx context.Context) ([]domain.FuelPurchase, error)
	update    func(ctx context.Context, fp domain.FuelPurchase) (domain.FuelPurchase, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockFuelRepo) Create(ctx context.Context, fp domain.FuelPurchase) (domain.FuelPurchase, error) {
	return m.create(ctx, fp)
}
func (m *mockFuelRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.FuelPurchase, error) {
	return m.getByID(ctx, id)
}
func (m *mockFuelRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.FuelPurchase, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockFuelRepo) List(ctx context.Context) ([]domain.FuelPurchase, error) {
	return m.list(ctx)
}
func (m *mockFuelRepo) Update(ctx context.Context, fp domain.FuelPurchase) (domain.FuelPurchase, error) {
	return m.update(ctx, fp)
}
func (m *mockFuelRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// mockUserRepo is a hand-written test double for repo.UserRepo.
type mockUserRepo struct {
	create     func(ctx context.Context, u domain.User) (domain.User, error)
	getByEmail func(ctx context.Context, email string) (domain.User, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return m.create(ctx, u)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}

// compile-time checks: mocks must satisfy the repo interfaces.
var (
	_ repo.TripRepo         = (*mockTripRepo)(nil)
	_ repo.StopRepo         = (*mockStopRepo)(nil)
	_ repo.FuelPurchaseRepo = (*mockFuelRepo)(nil)
	_ repo.UserRepo         = (*mockUserRepo)(nil)
)

// tripExists returns a trips repo whose GetByID succeeds for any id.
func tripExists() *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.TripRecord, error) {
			return domain.TripRecord{ID: id}, nil
		},
	}
}

// tripMissing returns a trips repo whose GetByID always reports not found.
func tripMissing() *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.TripRecord, error) {
			return domain.TripRecord{}, domain.ErrNotFound
		},
	}
}
