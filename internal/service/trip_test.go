package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routr/backend/internal/domain"
	"github.com/routr/backend/internal/service"
)

// ---- helpers ---------------------------------------------------------------

func validTrip() domain.TripRecord {
	return domain.TripRecord{
		Date:          time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CompanyName:   "Buckeye Freight",
		DriverName:    "Sam Ortiz",
		StartLocation: "Columbus, OH",
		EndLocation:   "Dayton, OH",
		StartTime:     domain.ClockTime(6 * 60),
		EndTime:       domain.ClockTime(15 * 60),
		StartMileage:  decimal.RequireFromString("1000.00"),
		EndMileage:    decimal.RequireFromString("1180.50"),
		Stops: []domain.Stop{
			{CustomerName: "Acme Foods", CustomerAddress: "12 Main St, Springfield, OH", PalletsIn: 4},
		},
	}
}

// echoRepo returns whatever it receives; for tests that only care about validation.
func echoRepo() *mockTripRepo {
	return &mockTripRepo{
		create: func(_ context.Context, t domain.TripRecord) (domain.TripRecord, error) { return t, nil },
		update: func(_ context.Context, t domain.TripRecord) (domain.TripRecord, error) { return t, nil },
	}
}

// ---- Create tests ----------------------------------------------------------

func TestTripService_Create_Valid(t *testing.T) {
	svc := service.NewTripService(echoRepo())

	trip := validTrip()
	trip.CompanyName = "  Buckeye Freight  "

	got, err := svc.Create(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, "Buckeye Freight", got.CompanyName)
	assert.Len(t, got.Stops, 1)
}

func TestTripService_Create_Invalid(t *testing.T) {
	cases := map[string]func(*domain.TripRecord){
		"missing date":           func(tr *domain.TripRecord) { tr.Date = time.Time{} },
		"blank company":          func(tr *domain.TripRecord) { tr.CompanyName = "   " },
		"blank driver":           func(tr *domain.TripRecord) { tr.DriverName = "" },
		"blank start location":   func(tr *domain.TripRecord) { tr.StartLocation = "" },
		"blank end location":     func(tr *domain.TripRecord) { tr.EndLocation = " " },
		"negative start mileage": func(tr *domain.TripRecord) { tr.StartMileage = decimal.NewFromInt(-1) },
		"end below start":        func(tr *domain.TripRecord) { tr.EndMileage = decimal.RequireFromString("999.99") },
		"end time past midnight": func(tr *domain.TripRecord) { tr.EndTime = domain.ClockTime(24 * 60) },
		"end mileage too large":  func(tr *domain.TripRecord) { tr.EndMileage = decimal.RequireFromString("999999999") },
		"end mileage rounds up":  func(tr *domain.TripRecord) { tr.EndMileage = decimal.RequireFromString("99999999.999") },
		"negative pallets":       func(tr *domain.TripRecord) { tr.Stops[0].PalletsOut = -2 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			svc := service.NewTripService(echoRepo())
			trip := validTrip()
			mutate(&trip)

			_, err := svc.Create(context.Background(), trip)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestTripService_Create_LargestMileage(t *testing.T) {
	svc := service.NewTripService(echoRepo())

	trip := validTrip()
	trip.EndMileage = decimal.RequireFromString("99999999.99")

	_, err := svc.Create(context.Background(), trip)

	assert.NoError(t, err)
}

func TestTripService_Create_EqualMileage(t *testing.T) {
	svc := service.NewTripService(echoRepo())

	trip := validTrip()
	trip.EndMileage = trip.StartMileage

	_, err := svc.Create(context.Background(), trip)

	assert.NoError(t, err)
}

func TestTripService_Create_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := &mockTripRepo{
		create: func(_ context.Context, _ domain.TripRecord) (domain.TripRecord, error) {
			return domain.TripRecord{}, repoErr
		},
	}
	svc := service.NewTripService(r)

	_, err := svc.Create(context.Background(), validTrip())

	assert.ErrorIs(t, err, repoErr)
}

// ---- GetByID tests ---------------------------------------------------------

func TestTripService_GetByID_Found(t *testing.T) {
	want := validTrip()
	want.ID = uuid.New()

	r := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.TripRecord, error) { return want, nil },
	}
	svc := service.NewTripService(r)

	got, err := svc.GetByID(context.Background(), want.ID)

	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
}

func TestTripService_GetByID_NotFound(t *testing.T) {
	svc := service.NewTripService(tripMissing())

	_, err := svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- ListPaged tests -------------------------------------------------------

func TestTripService_ListPaged(t *testing.T) {
	var gotParams domain.PaginationParams
	r := &mockTripRepo{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.TripRecord, int64, error) {
			gotParams = p
			return []domain.TripRecord{validTrip(), validTrip()}, 12, nil
		},
	}
	svc := service.NewTripService(r)

	got, total, err := svc.ListPaged(context.Background(), domain.PaginationParams{Page: 2, Limit: 10})

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.EqualValues(t, 12, total)
	assert.Equal(t, 2, gotParams.Page)
}

func TestTripService_ListPaged_Empty(t *testing.T) {
	r := &mockTripRepo{
		listPaged: func(_ context.Context, _ domain.PaginationParams) ([]domain.TripRecord, int64, error) {
			return nil, 0, nil
		},
	}
	svc := service.NewTripService(r)

	got, _, err := svc.ListPaged(context.Background(), domain.PaginationParams{Page: 1, Limit: 20})

	require.NoError(t, err)
	// Should return an empty slice, not nil; callers can safely range over it.
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ---- Update tests ----------------------------------------------------------

func TestTripService_Update_Valid(t *testing.T) {
	svc := service.NewTripService(echoRepo())

	trip := validTrip()
	trip.ID = uuid.New()
	trip.DriverName = "Renamed Driver"

	got, err := svc.Update(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, "Renamed Driver", got.DriverName)
}

func TestTripService_Update_EndBelowStart(t *testing.T) {
	svc := service.NewTripService(echoRepo())

	trip := validTrip()
	trip.EndMileage = decimal.NewFromInt(10)

	_, err := svc.Update(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Update_NotFound(t *testing.T) {
	r := &mockTripRepo{
		update: func(_ context.Context, _ domain.TripRecord) (domain.TripRecord, error) {
			return domain.TripRecord{}, domain.ErrNotFound
		},
	}
	svc := service.NewTripService(r)

	_, err := svc.Update(context.Background(), validTrip())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Delete tests ----------------------------------------------------------

func TestTripService_Delete_OK(t *testing.T) {
	r := &mockTripRepo{
		delete: func(_ context.Context, _ uuid.UUID) error { return nil },
	}
	svc := service.NewTripService(r)

	err := svc.Delete(context.Background(), uuid.New())

	assert.NoError(t, err)
}

func TestTripService_Delete_NotFound(t *testing.T) {
	r := &mockTripRepo{
		delete: func(_ context.Context, _ uuid.UUID) error { return domain.ErrNotFound },
	}
	svc := service.NewTripService(r)

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- UniqueLocations tests -------------------------------------------------

func TestTripService_UniqueLocations_TrimsQuery(t *testing.T) {
	var gotQuery string
	r := &mockTripRepo{
		uniqueLocations: func(_ context.Context, q string) ([]string, error) {
			gotQuery = q
			return []string{"Columbus, OH"}, nil
		},
	}
	svc := service.NewTripService(r)

	got, err := svc.UniqueLocations(context.Background(), "  colum ")

	require.NoError(t, err)
	assert.Equal(t, "colum", gotQuery)
	assert.Equal(t, []string{"Columbus, OH"}, got)
}

func TestTripService_UniqueLocations_NeverNil(t *testing.T) {
	r := &mockTripRepo{
		uniqueLocations: func(_ context.Context, _ string) ([]string, error) { return nil, nil },
	}
	svc := service.NewTripService(r)

	got, err := svc.UniqueLocations(context.Background(), "")

	require.NoError(t, err)
	assert.NotNil(t, got)
}
