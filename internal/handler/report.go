package handler

import (
	"net/http"

	"github.com/routr/backend/internal/domain"
)

// ReportResponse is the body of GET /trips/{id}/report.
type ReportResponse struct {
	Trip          TripResponse           `json:"trip"`
	Journey       []domain.JourneyEntry  `json:"journey"`
	Routes        []domain.RouteLeg      `json:"routes"`
	Usage         domain.Usage           `json:"usage"`
	Cost          float64                `json:"cost"`
	FuelPurchases []FuelPurchaseResponse `json:"fuel_purchases"`
}

// GetTripReport handles GET /trips/{id}/report. Every call makes one
// completion request; nothing is cached or stored.
func (s *Server) GetTripReport(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	rep, err := s.reports.Generate(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}

	fuel := make([]FuelPurchaseResponse, len(rep.FuelPurchases))
	for i, fp := range rep.FuelPurchases {
		fuel[i] = fuelToResponse(fp)
	}
	writeJSON(w, http.StatusOK, ReportResponse{
		Trip:          tripToResponse(rep.Trip),
		Journey:       rep.Report.Journey,
		Routes:        rep.Report.Routes,
		Usage:         rep.Report.Usage,
		Cost:          rep.Report.Cost,
		FuelPurchases: fuel,
	})
}
