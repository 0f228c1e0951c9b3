package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/SiloShare/siloshare-marketplace-sub001/internal/app"
	"github.com/SiloShare/siloshare-marketplace-sub001/internal/domain"
)

// SiloService is the minimal surface the silo handlers need.
type SiloService interface {
	CreateSilo(ctx context.Context, in app.CreateSiloInput) (domain.Silo, error)
	ListSilos(ctx context.Context) ([]domain.Silo, error)
	GetSilo(ctx context.Context, id string) (domain.Silo, error)
}

type createSiloRequest struct {
	Name          string          `json:"name"`
	Location      string          `json:"location"`
	TotalCapacity decimal.Decimal `json:"total_capacity"`
	PricePerTonne decimal.Decimal `json:"price_per_tonne"`
}

type siloResponse struct {
	ID                string          `json:"id"`
	OwnerID           string          `json:"owner_id"`
	Name              string          `json:"name"`
	Location          string          `json:"location"`
	TotalCapacity     decimal.Decimal `json:"total_capacity"`
	AvailableCapacity decimal.Decimal `json:"available_capacity"`
	PricePerTonne     decimal.Decimal `json:"price_per_tonne"`
	CreatedAt         time.Time       `json:"created_at"`
}

func toSiloResponse(s domain.Silo) siloResponse {
	return siloResponse{
		ID:                s.ID,
		OwnerID:           s.OwnerID,
		Name:              s.Name,
		Location:          s.Location,
		TotalCapacity:     s.TotalCapacity,
		AvailableCapacity: s.AvailableCapacity,
		PricePerTonne:     s.PricePerTonne,
		CreatedAt:         s.CreatedAt,
	}
}

// HandleCreateSilo publishes a new silo owned by the acting user.
func HandleCreateSilo(svc SiloService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorID(r)
		if actor == "" {
			writeError(w, http.StatusBadRequest, codeActorRequired, "missing "+actorHeader+" header")
			return
		}

		var req createSiloRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		silo, err := svc.CreateSilo(r.Context(), app.CreateSiloInput{
			OwnerID:       actor,
			Name:          req.Name,
			Location:      req.Location,
			TotalCapacity: req.TotalCapacity,
			PricePerTonne: req.PricePerTonne,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toSiloResponse(silo))
	}
}

func HandleListSilos(svc SiloService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		silos, err := svc.ListSilos(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}

		out := make([]siloResponse, 0, len(silos))
		for _, s := range silos {
			out = append(out, toSiloResponse(s))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func HandleGetSilo(svc SiloService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		silo, err := svc.GetSilo(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSiloResponse(silo))
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
