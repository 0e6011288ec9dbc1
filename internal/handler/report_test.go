package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routr/backend/internal/domain"
	"github.com/routr/backend/internal/handler"
	"github.com/routr/backend/internal/report"
	"github.com/routr/backend/internal/service"
)

func reportService(rep service.TripReport, err error) *mockReportServicer {
	return &mockReportServicer{
		generate: func(_ context.Context, _ uuid.UUID) (service.TripReport, error) { return rep, err },
	}
}

func TestGetTripReport_200(t *testing.T) {
	trip := tripFixture()
	rep := service.TripReport{
		Trip: trip,
		Report: domain.Report{
			Journey: []domain.JourneyEntry{{
				CustomerName: "Acme Foods", City: "Springfield", State: "OH",
				PalletsIn: 4, TimeIn: "07:10", TimeOut: "07:40", Mileage: "45",
			}},
			Routes: []domain.RouteLeg{{
				RouteName: "Columbus to Springfield", Route: []string{"I-70 W"}, Distance: 45, CumulativeMileage: 1045,
			}},
			Usage: domain.Usage{PromptTokens: 1000, CompletionTokens: 500},
			Cost:  0.025,
		},
		FuelPurchases: []domain.FuelPurchase{fuelFixture()},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/"+trip.ID.String()+"/report", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(handler.Services{Reports: reportService(rep, nil)}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeJSON[handler.ReportResponse](t, rec.Body)
	assert.Equal(t, trip.ID, resp.Trip.ID)
	require.Len(t, resp.Journey, 1)
	assert.Equal(t, "07:10", resp.Journey[0].TimeIn)
	require.Len(t, resp.Routes, 1)
	assert.Equal(t, 1045, resp.Routes[0].CumulativeMileage)
	assert.InDelta(t, 0.025, resp.Cost, 1e-9)
	require.Len(t, resp.FuelPurchases, 1)
	assert.Equal(t, "INV-7", resp.FuelPurchases[0].InvoiceNumber)
}

func TestGetTripReport_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"unknown trip", fmt.Errorf("service.ReportService.Generate: %w", domain.ErrNotFound), http.StatusNotFound},
		{"no stops", fmt.Errorf("%w: trip has no stops to report on", domain.ErrValidation), http.StatusUnprocessableEntity},
		{"bad reply", fmt.Errorf("%w: %w", domain.ErrUpstream, report.ErrSchema), http.StatusBadGateway},
		{"not configured", report.ErrNotConfigured, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/trips/"+uuid.NewString()+"/report", nil)
			rec := httptest.NewRecorder()
			newHTTPHandler(handler.Services{Reports: reportService(service.TripReport{}, tt.err)}).ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
