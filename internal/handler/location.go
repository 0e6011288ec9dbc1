package handler

import "net/http"

// ListLocations handles GET /locations?q=. It returns the distinct start and
// end locations containing q (case-insensitive), sorted, as
// {"locations": [...]}. The trip form uses it for autocomplete.
func (s *Server) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := s.trips.UniqueLocations(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"locations": locations})
}
