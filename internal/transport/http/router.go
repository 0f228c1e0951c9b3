package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires all routes and middleware.
func NewRouter(silos SiloService, reservations ReservationService, logger *slog.Logger, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return RequestLogger(next, logger)
	})
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", actorHeader},
	}))

	r.Get("/health", HealthHandler)

	r.Route("/silos", func(r chi.Router) {
		r.Get("/", HandleListSilos(silos))
		r.Post("/", HandleCreateSilo(silos))
		r.Get("/{id}", HandleGetSilo(silos))
		r.Get("/{id}/reservations", HandleListSiloReservations(reservations))
	})

	r.Route("/reservations", func(r chi.Router) {
		r.Get("/", HandleListMyReservations(reservations))
		r.Post("/", HandleCreateReservation(reservations))
		r.Get("/{id}", HandleGetReservation(reservations))
		r.Get("/{id}/history", HandleListHistory(reservations))
		r.Post("/{id}/approve", HandleApproveReservation(reservations))
		r.Post("/{id}/reject", HandleRejectReservation(reservations))
		r.Post("/{id}/cancel", HandleCancelReservation(reservations))
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})

	return r
}
