package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routr/backend/internal/domain"
	"github.com/routr/backend/internal/repo"
	"github.com/routr/backend/testutil"
)

func fuelFixture() domain.FuelPurchase {
	return domain.FuelPurchase{
		State:         "OH",
		Date:          time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		InvoiceNumber: "INV-20931",
		Gallons:       decimal.RequireFromString("112.40"),
		DollarAmount:  decimal.RequireFromString("431.62"),
		StopName:      "Pilot #221",
		City:          "London",
	}
}

func TestFuelPurchaseRepo_CreateAndGet(t *testing.T) {
	r := repo.NewFuelPurchaseRepo(testutil.NewTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, fuelFixture())
	require.NoError(t, err)
	assert.Nil(t, created.TripID)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, "INV-20931", got.InvoiceNumber)
	assert.True(t, decimal.RequireFromString("112.4").Equal(got.Gallons))
	assert.True(t, decimal.RequireFromString("431.62").Equal(got.DollarAmount))
}

func TestFuelPurchaseRepo_SecondReceiptForTrip_Conflict(t *testing.T) {
	tx := testutil.NewTx(t)
	trips := repo.NewTripRepo(tx)
	fuel := repo.NewFuelPurchaseRepo(tx)
	ctx := context.Background()

	parent := mustCreateTrip(t, trips)
	first := fuelFixture()
	first.TripID = &parent.ID
	_, err := fuel.Create(ctx, first)
	require.NoError(t, err)

	second := fuelFixture()
	second.InvoiceNumber = "INV-20932"
	second.TripID = &parent.ID
	_, err = fuel.Create(ctx, second)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestFuelPurchaseRepo_NegativeGallons_RejectedByCheck(t *testing.T) {
	r := repo.NewFuelPurchaseRepo(testutil.NewTx(t))

	fp := fuelFixture()
	fp.Gallons = decimal.NewFromInt(-1)
	_, err := r.Create(context.Background(), fp)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFuelPurchaseRepo_UpdateAndDelete(t *testing.T) {
	r := repo.NewFuelPurchaseRepo(testutil.NewTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, fuelFixture())
	require.NoError(t, err)

	created.City = "Zanesville"
	updated, err := r.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Zanesville", updated.City)

	require.NoError(t, r.Delete(ctx, created.ID))
	assert.ErrorIs(t, r.Delete(ctx, created.ID), domain.ErrNotFound)
}

func TestFuelPurchaseRepo_Update_NotFound(t *testing.T) {
	r := repo.NewFuelPurchaseRepo(testutil.NewTx(t))

	fp := fuelFixture()
	fp.ID = uuid.New()
	_, err := r.Update(context.Background(), fp)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
