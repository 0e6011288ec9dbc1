package handler_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/routr/backend/internal/domain"
	"github.com/routr/backend/internal/handler"
	"github.com/routr/backend/internal/service"
)

// ---- mocks -----------------------------------------------------------------

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	create          func(ctx context.Context, trip domain.TripRecord) (domain.TripRecord, error)
	getByID         func(ctx context.Context, id uuid.UUID) (domain.TripRecord, error)
	listPaged       func(ctx context.Context, p domain.PaginationParams) ([]domain.TripRecord, int64, error)
	update          func(ctx context.Context, trip domain.TripRecord) (domain.TripRecord, error)
	delete          func(ctx context.Context, id uuid.UUID) error
	uniqueLocations func(ctx context.Context, q string) ([]string, error)
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.TripRecord) (domain.TripRecord, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.TripRecord, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.TripRecord, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.TripRecord) (domain.TripRecord, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripServicer) UniqueLocations(ctx context.Context, q string) ([]string, error) {
	return m.uniqueLocations(ctx, q)
}

// mockStopServicer is a test double for handler.StopServicer.
type mockStopServicer struct {
	create       func(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	getByID      func(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)
	update       func(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	delete       func(ctx context.Context, tripID, stopID uuid.UUID) error
}

func (m *mockStopServicer) Create(ctx context.Context, s domain.Stop) (domain.Stop, error) {
	return m.create(ctx, s)
}
func (m *mockStopServicer) GetByID(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error) {
	return m.getByID(ctx, tripID, stopID)
}
func (m *mockStopServicer) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockStopServicer) Update(ctx context.Context, s domain.Stop) (domain.Stop, error) {
	return m.update(ctx, s)
}
func (m *mockStopServicer) Delete(ctx context.Context, tripID, stopID uuid.UUID) error {
	return m.delete(ctx, tripID, stopID)
}

// mockFuelServicer is a test double for handler.FuelServicer.
type mockFuelServicer struct {
	create    func(ctx context.Context, fp domain.FuelPurchase) (domain.FuelPurchase, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.FuelPurchase, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.FuelPurchase, int64, error)
	update    func(ctx context.Context, fp domain.FuelPurchase) (domain.FuelPurchase, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockFuelServicer) Create(ctx context.Context, fp domain.FuelPurchase) (domain.FuelPurchase, error) {
	return m.create(ctx, fp)
}
func (m *mockFuelServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.FuelPurchase, error) {
	return m.getByID(ctx, id)
}
func (m *mockFuelServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.FuelPurchase, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockFuelServicer) Update(ctx context.Context, fp domain.FuelPurchase) (domain.FuelPurchase, error) {
	return m.update(ctx, fp)
}
func (m *mockFuelServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockAuthServicer struct {
	login func(ctx context.Context, email, password string) (service.Session, error)
}

func (m *mockAuthServicer) Login(ctx context.Context, email, password string) (service.Session, error) {
	return m.login(ctx, email, password)
}

type mockReportServicer struct {
	generate func(ctx context.Context, tripID uuid.UUID) (service.TripReport, error)
}

func (m *mockReportServicer) Generate(ctx context.Context, tripID uuid.UUID) (service.TripReport, error) {
	return m.generate(ctx, tripID)
}

type mockExportServicer struct {
	export func(ctx context.Context) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context) ([]domain.ExportRow, error) {
	return m.export(ctx)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// compile-time checks: mocks must satisfy the handler interfaces.
var (
	_ handler.TripServicer   = (*mockTripServicer)(nil)
	_ handler.StopServicer   = (*mockStopServicer)(nil)
	_ handler.FuelServicer   = (*mockFuelServicer)(nil)
	_ handler.AuthServicer   = (*mockAuthServicer)(nil)
	_ handler.ReportServicer = (*mockReportServicer)(nil)
	_ handler.ExportServicer = (*mockExportServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// passAuth stands in for middleware.RequireAuth in handler tests.
func passAuth(next http.Handler) http.Handler { return next }

// newHTTPHandler mounts a Server with the given services on a chi router,
// mirroring how the serve command wires it in production.
func newHTTPHandler(svc handler.Services) http.Handler {
	r := chi.NewRouter()
	srv := handler.NewServer(svc, handler.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	srv.Routes(r, passAuth, nil)
	return r
}

// denyAuth rejects every request, standing in for RequireAuth without a token.
func denyAuth(http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
}

// newProtectedHandler mounts a Server whose authenticated routes always refuse.
func newProtectedHandler(svc handler.Services) http.Handler {
	r := chi.NewRouter()
	srv := handler.NewServer(svc, handler.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	srv.Routes(r, denyAuth, nil)
	return r
}

func tripFixture() domain.TripRecord {
	id := uuid.New()
	return domain.TripRecord{
		ID:            id,
		Date:          time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CompanyName:   "Buckeye Freight",
		DriverName:    "Sam Ortiz",
		StartTime:     domain.ClockTime(6*60 + 15),
		EndTime:       domain.ClockTime(15 * 60),
		StartMileage:  decimal.RequireFromString("1000"),
		EndMileage:    decimal.RequireFromString("1180.5"),
		StartLocation: "Columbus, OH",
		EndLocation:   "Dayton, OH",
		Stops: []domain.Stop{
			{ID: uuid.New(), TripID: id, Position: 0, CustomerName: "Acme Foods", PalletsIn: 4},
		},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func validTripBody() map[string]any {
	return map[string]any{
		"date":             "2025-06-01",
		"company_name":     "Buckeye Freight",
		"driver_name":      "Sam Ortiz",
		"start_time":       "06:15",
		"end_time":         "15:00",
		"starting_mileage": "1000",
		"ending_mileage":   1180.5,
		"start_location":   "Columbus, OH",
		"end_location":     "Dayton, OH",
		"stops": []map[string]any{
			{"customer_name": "Acme Foods", "pallets_in": 4},
		},
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeJSON[T any](t *testing.T, r io.Reader) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(r).Decode(&v))
	return v
}
