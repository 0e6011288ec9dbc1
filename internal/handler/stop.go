package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/routr/backend/internal/domain"
)

// StopRequest is the body of the stop endpoints and one entry of
// TripRequest.Stops. ID is only meaningful inside a trip update.
type StopRequest struct {
	ID              *uuid.UUID `json:"id,omitempty"`
	CustomerName    string     `json:"customer_name" validate:"max=255"`
	CustomerAddress string     `json:"customer_address" validate:"max=255"`
	PalletsIn       int        `json:"pallets_in" validate:"gte=0"`
	PalletsOut      int        `json:"pallets_out" validate:"gte=0"`
	Comments        string     `json:"comments"`
}

// StopResponse is the JSON representation of a stop.
type StopResponse struct {
	ID              uuid.UUID `json:"id"`
	TripID          uuid.UUID `json:"trip_id"`
	Position        int       `json:"position"`
	CustomerName    string    `json:"customer_name"`
	CustomerAddress string    `json:"customer_address"`
	PalletsIn       int       `json:"pallets_in"`
	PalletsOut      int       `json:"pallets_out"`
	Comments        string    `json:"comments"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateStop handles POST /trips/{id}/stops. The stop is appended to the trip.
func (s *Server) CreateStop(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body StopRequest
	if err := decodeBody(r, &body); err != nil {
		writeDecodeError(w, err)
		return
	}

	created, err := s.stops.Create(r.Context(), requestToStop(tripID, body))
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	w.Header().Set("Location", "/trips/"+tripID.String()+"/stops/"+created.ID.String())
	writeJSON(w, http.StatusCreated, stopToResponse(created))
}

// ListStops handles GET /trips/{id}/stops. Stops come back in visiting order.
func (s *Server) ListStops(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	stops, err := s.stops.ListByTripID(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}

	data := make([]StopResponse, len(stops))
	for i, st := range stops {
		data[i] = stopToResponse(st)
	}
	writeJSON(w, http.StatusOK, map[string][]StopResponse{"data": data})
}

// GetStop handles GET /trips/{id}/stops/{stopID}.
func (s *Server) GetStop(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	stopID, ok := pathUUID(w, r, "stopID")
	if !ok {
		return
	}
	stop, err := s.stops.GetByID(r.Context(), tripID, stopID)
	if err != nil {
		s.writeError(w, r, err, "stop not found")
		return
	}
	writeJSON(w, http.StatusOK, stopToResponse(stop))
}

// UpdateStop handles PUT /trips/{id}/stops/{stopID}. Position is unchanged.
func (s *Server) UpdateStop(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	stopID, ok := pathUUID(w, r, "stopID")
	if !ok {
		return
	}
	var body StopRequest
	if err := decodeBody(r, &body); err != nil {
		writeDecodeError(w, err)
		return
	}

	stop := requestToStop(tripID, body)
	stop.ID = stopID
	updated, err := s.stops.Update(r.Context(), stop)
	if err != nil {
		s.writeError(w, r, err, "stop not found")
		return
	}
	writeJSON(w, http.StatusOK, stopToResponse(updated))
}

// DeleteStop handles DELETE /trips/{id}/stops/{stopID}.
func (s *Server) DeleteStop(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	stopID, ok := pathUUID(w, r, "stopID")
	if !ok {
		return
	}
	if err := s.stops.Delete(r.Context(), tripID, stopID); err != nil {
		s.writeError(w, r, err, "stop not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func requestToStop(tripID uuid.UUID, body StopRequest) domain.Stop {
	return domain.Stop{
		TripID:          tripID,
		CustomerName:    body.CustomerName,
		CustomerAddress: body.CustomerAddress,
		PalletsIn:       body.PalletsIn,
		PalletsOut:      body.PalletsOut,
		Comments:        body.Comments,
	}
}

func stopToResponse(st domain.Stop) StopResponse {
	return StopResponse{
		ID:              st.ID,
		TripID:          st.TripID,
		Position:        st.Position,
		CustomerName:    st.CustomerName,
		CustomerAddress: st.CustomerAddress,
		PalletsIn:       st.PalletsIn,
		PalletsOut:      st.PalletsOut,
		Comments:        st.Comments,
		CreatedAt:       st.CreatedAt,
		UpdatedAt:       st.UpdatedAt,
	}
}
