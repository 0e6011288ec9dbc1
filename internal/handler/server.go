// Package handler implements the HTTP handlers for the Routr API.
// All handlers are methods on Server, split into domain-specific files
// (trip.go, stop.go, fuel.go, ...) that share the same dependencies.
// Routes wires them onto a chi router.
package handler

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/routr/backend/internal/domain"
	"github.com/routr/backend/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.TripRecord) (domain.TripRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.TripRecord, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.TripRecord, int64, error)
	Update(ctx context.Context, trip domain.TripRecord) (domain.TripRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UniqueLocations(ctx context.Context, query string) ([]string, error)
}

// StopServicer defines the business operations the stop handlers depend on.
type StopServicer interface {
	Create(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	GetByID(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)
	Update(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	Delete(ctx context.Context, tripID, stopID uuid.UUID) error
}

// FuelServicer defines the business operations the fuel purchase handlers depend on.
type FuelServicer interface {
	Create(ctx context.Context, fp domain.FuelPurchase) (domain.FuelPurchase, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.FuelPurchase, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.FuelPurchase, int64, error)
	Update(ctx context.Context, fp domain.FuelPurchase) (domain.FuelPurchase, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuthServicer defines the login operations the auth handlers depend on.
type AuthServicer interface {
	Login(ctx context.Context, email, password string) (service.Session, error)
}

// ReportServicer generates the itinerary report for a trip.
type ReportServicer interface {
	Generate(ctx context.Context, tripID uuid.UUID) (service.TripReport, error)
}

// ExportServicer defines the operation the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Pinger reports whether the database is reachable. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services bundles the dependencies of Server. Nil members are allowed in
// tests that do not exercise the corresponding routes.
type Services struct {
	Trips   TripServicer
	Stops   StopServicer
	Fuel    FuelServicer
	Auth    AuthServicer
	Reports ReportServicer
	Export  ExportServicer
	DB      Pinger
}

// Server holds the handler dependencies.
type Server struct {
	trips   TripServicer
	stops   StopServicer
	fuel    FuelServicer
	auth    AuthServicer
	reports ReportServicer
	export  ExportServicer
	db      Pinger
	log     *slog.Logger

	// secureCookies marks the session cookie Secure; off for local http.
	secureCookies bool
}

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the logger used for unexpected errors.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithSecureCookies marks the session cookie Secure.
func WithSecureCookies(secure bool) Option {
	return func(s *Server) { s.secureCookies = secure }
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services, opts ...Option) *Server {
	s := &Server{
		trips:   svc.Trips,
		stops:   svc.Stops,
		fuel:    svc.Fuel,
		auth:    svc.Auth,
		reports: svc.Reports,
		export:  svc.Export,
		db:      svc.DB,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
