package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts every endpoint on r. Health, metrics and the OpenAPI document
// stay public; everything else, apart from login and logout, is wrapped in
// requireAuth. metrics may be nil.
func (s *Server) Routes(r chi.Router, requireAuth func(http.Handler) http.Handler, metrics http.Handler) {
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}

	r.Post("/auth/login", s.Login)
	r.Post("/auth/logout", s.Logout)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Put("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)
				r.Get("/report", s.GetTripReport)

				r.Get("/stops", s.ListStops)
				r.Post("/stops", s.CreateStop)
				r.Get("/stops/{stopID}", s.GetStop)
				r.Put("/stops/{stopID}", s.UpdateStop)
				r.Delete("/stops/{stopID}", s.DeleteStop)
			})
		})

		r.Route("/fuel-purchases", func(r chi.Router) {
			r.Get("/", s.ListFuelPurchases)
			r.Post("/", s.CreateFuelPurchase)
			r.Get("/{id}", s.GetFuelPurchase)
			r.Put("/{id}", s.UpdateFuelPurchase)
			r.Delete("/{id}", s.DeleteFuelPurchase)
		})

		r.Get("/locations", s.ListLocations)
		r.Get("/export", s.GetExport)
	})
}
