package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/routr/backend/internal/domain"
)

// TripRequest is the body of POST /trips and PUT /trips/{id}.
// On update, Stops is the complete new stop list: stops carrying an id are
// kept and updated, stops without one are added, omitted ones are deleted.
type TripRequest struct {
	Date           openapi_types.Date `json:"date" validate:"required"`
	CompanyName    string             `json:"company_name" validate:"required,max=255"`
	CompanyAddress string             `json:"company_address" validate:"max=200"`
	DriverName     string             `json:"driver_name" validate:"required,max=255"`
	Manifest       string             `json:"manifest" validate:"max=255"`
	TruckNo        string             `json:"truck_no" validate:"max=50"`
	TrailerNo      string             `json:"trailer_no" validate:"max=50"`
	StartTime      *domain.ClockTime  `json:"start_time" validate:"required"`
	EndTime        *domain.ClockTime  `json:"end_time" validate:"required"`
	StartMileage   *decimal.Decimal   `json:"starting_mileage" validate:"required"`
	EndMileage     *decimal.Decimal   `json:"ending_mileage" validate:"required"`
	StartLocation  string             `json:"start_location" validate:"required,max=255"`
	EndLocation    string             `json:"end_location" validate:"required,max=255"`
	Stops          []StopRequest      `json:"stops" validate:"dive"`
}

// TripResponse is the JSON representation of a trip.
type TripResponse struct {
	ID             uuid.UUID             `json:"id"`
	Date           openapi_types.Date    `json:"date"`
	CompanyName    string                `json:"company_name"`
	CompanyAddress string                `json:"company_address"`
	DriverName     string                `json:"driver_name"`
	Manifest       string                `json:"manifest"`
	TruckNo        string                `json:"truck_no"`
	TrailerNo      string                `json:"trailer_no"`
	StartTime      domain.ClockTime      `json:"start_time"`
	EndTime        domain.ClockTime      `json:"end_time"`
	StartMileage   string                `json:"starting_mileage"`
	EndMileage     string                `json:"ending_mileage"`
	Distance       string                `json:"distance"`
	StartLocation  string                `json:"start_location"`
	EndLocation    string                `json:"end_location"`
	Stops          []StopResponse        `json:"stops"`
	FuelPurchase   *FuelPurchaseResponse `json:"fuel_purchase"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body TripRequest
	if err := decodeBody(r, &body); err != nil {
		writeDecodeError(w, err)
		return
	}

	created, err := s.trips.Create(r.Context(), requestToTrip(uuid.Nil, body))
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	w.Header().Set("Location", "/trips/"+created.ID.String())
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params, ok := pageParams(w, r)
	if !ok {
		return
	}
	trips, total, err := s.trips.ListPaged(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	data := make([]TripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	setTotalCount(w, total)
	writeJSON(w, http.StatusOK, ListResponse[TripResponse]{Data: data, Pagination: newPagination(params, total)})
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body TripRequest
	if err := decodeBody(r, &body); err != nil {
		writeDecodeError(w, err)
		return
	}

	updated, err := s.trips.Update(r.Context(), requestToTrip(id, body))
	if err != nil {
		s.writeError(w, r, err, "trip or stop not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := s.trips.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// requestToTrip converts a validated TripRequest into a domain.TripRecord.
// Stop order follows the request.
func requestToTrip(id uuid.UUID, body TripRequest) domain.TripRecord {
	t := domain.TripRecord{
		ID:             id,
		Date:           body.Date.Time,
		CompanyName:    body.CompanyName,
		CompanyAddress: body.CompanyAddress,
		DriverName:     body.DriverName,
		Manifest:       body.Manifest,
		TruckNo:        body.TruckNo,
		TrailerNo:      body.TrailerNo,
		StartTime:      *body.StartTime,
		EndTime:        *body.EndTime,
		StartMileage:   *body.StartMileage,
		EndMileage:     *body.EndMileage,
		StartLocation:  body.StartLocation,
		EndLocation:    body.EndLocation,
		Stops:          make([]domain.Stop, len(body.Stops)),
	}
	for i, sr := range body.Stops {
		st := requestToStop(id, sr)
		if sr.ID != nil {
			st.ID = *sr.ID
		}
		st.Position = i
		t.Stops[i] = st
	}
	return t
}

// tripToResponse converts a domain.TripRecord to its JSON shape.
func tripToResponse(t domain.TripRecord) TripResponse {
	resp := TripResponse{
		ID:             t.ID,
		Date:           openapi_types.Date{Time: t.Date},
		CompanyName:    t.CompanyName,
		CompanyAddress: t.CompanyAddress,
		DriverName:     t.DriverName,
		Manifest:       t.Manifest,
		TruckNo:        t.TruckNo,
		TrailerNo:      t.TrailerNo,
		StartTime:      t.StartTime,
		EndTime:        t.EndTime,
		StartMileage:   t.StartMileage.StringFixed(2),
		EndMileage:     t.EndMileage.StringFixed(2),
		Distance:       t.Distance().StringFixed(2),
		StartLocation:  t.StartLocation,
		EndLocation:    t.EndLocation,
		Stops:          make([]StopResponse, len(t.Stops)),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
	for i, st := range t.Stops {
		resp.Stops[i] = stopToResponse(st)
	}
	if t.FuelPurchase != nil {
		fp := fuelToResponse(*t.FuelPurchase)
		resp.FuelPurchase = &fp
	}
	return resp
}
