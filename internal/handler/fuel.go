package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/routr/backend/internal/domain"
)

// FuelPurchaseRequest is the body of POST /fuel-purchases and PUT /fuel-purchases/{id}.
type FuelPurchaseRequest struct {
	TripID        *uuid.UUID         `json:"trip_id"`
	State         string             `json:"state" validate:"required,max=100"`
	Date          openapi_types.Date `json:"date" validate:"required"`
	InvoiceNumber string             `json:"invoice_number" validate:"required,max=100"`
	Gallons       *decimal.Decimal   `json:"gallons" validate:"required"`
	DollarAmount  *decimal.Decimal   `json:"dollar_amount" validate:"required"`
	StopName      string             `json:"fuel_stop_name" validate:"required,max=255"`
	City          string             `json:"city" validate:"required,max=100"`
}

// FuelPurchaseResponse is the JSON representation of a fuel purchase.
type FuelPurchaseResponse struct {
	ID            uuid.UUID          `json:"id"`
	TripID        *uuid.UUID         `json:"trip_id"`
	State         string             `json:"state"`
	Date          openapi_types.Date `json:"date"`
	InvoiceNumber string             `json:"invoice_number"`
	Gallons       string             `json:"gallons"`
	DollarAmount  string             `json:"dollar_amount"`
	StopName      string             `json:"fuel_stop_name"`
	City          string             `json:"city"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// CreateFuelPurchase handles POST /fuel-purchases.
func (s *Server) CreateFuelPurchase(w http.ResponseWriter, r *http.Request) {
	var body FuelPurchaseRequest
	if err := decodeBody(r, &body); err != nil {
		writeDecodeError(w, err)
		return
	}

	created, err := s.fuel.Create(r.Context(), requestToFuel(uuid.Nil, body))
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	w.Header().Set("Location", "/fuel-purchases/"+created.ID.String())
	writeJSON(w, http.StatusCreated, fuelToResponse(created))
}

// ListFuelPurchases handles GET /fuel-purchases, newest first.
func (s *Server) ListFuelPurchases(w http.ResponseWriter, r *http.Request) {
	params, ok := pageParams(w, r)
	if !ok {
		return
	}
	items, total, err := s.fuel.ListPaged(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	data := make([]FuelPurchaseResponse, len(items))
	for i, fp := range items {
		data[i] = fuelToResponse(fp)
	}
	setTotalCount(w, total)
	writeJSON(w, http.StatusOK, ListResponse[FuelPurchaseResponse]{Data: data, Pagination: newPagination(params, total)})
}

// GetFuelPurchase handles GET /fuel-purchases/{id}.
func (s *Server) GetFuelPurchase(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	fp, err := s.fuel.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "fuel purchase not found")
		return
	}
	writeJSON(w, http.StatusOK, fuelToResponse(fp))
}

// UpdateFuelPurchase handles PUT /fuel-purchases/{id}.
func (s *Server) UpdateFuelPurchase(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body FuelPurchaseRequest
	if err := decodeBody(r, &body); err != nil {
		writeDecodeError(w, err)
		return
	}

	updated, err := s.fuel.Update(r.Context(), requestToFuel(id, body))
	if err != nil {
		s.writeError(w, r, err, "fuel purchase or trip not found")
		return
	}
	writeJSON(w, http.StatusOK, fuelToResponse(updated))
}

// DeleteFuelPurchase handles DELETE /fuel-purchases/{id}.
func (s *Server) DeleteFuelPurchase(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := s.fuel.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "fuel purchase not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func requestToFuel(id uuid.UUID, body FuelPurchaseRequest) domain.FuelPurchase {
	return domain.FuelPurchase{
		ID:            id,
		TripID:        body.TripID,
		State:         body.State,
		Date:          body.Date.Time,
		InvoiceNumber: body.InvoiceNumber,
		Gallons:       *body.Gallons,
		DollarAmount:  *body.DollarAmount,
		StopName:      body.StopName,
		City:          body.City,
	}
}

func fuelToResponse(fp domain.FuelPurchase) FuelPurchaseResponse {
	return FuelPurchaseResponse{
		ID:            fp.ID,
		TripID:        fp.TripID,
		State:         fp.State,
		Date:          openapi_types.Date{Time: fp.Date},
		InvoiceNumber: fp.InvoiceNumber,
		Gallons:       fp.Gallons.StringFixed(2),
		DollarAmount:  fp.DollarAmount.StringFixed(2),
		StopName:      fp.StopName,
		City:          fp.City,
		CreatedAt:     fp.CreatedAt,
		UpdatedAt:     fp.UpdatedAt,
	}
}
