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

// ReservationService is the minimal surface the reservation handlers need.
type ReservationService interface {
	CreateReservation(ctx context.Context, in app.CreateReservationInput) (domain.Reservation, error)
	ApproveReservation(ctx context.Context, reservationID, actorID string) error
	RejectReservation(ctx context.Context, reservationID, actorID, reason string) error
	CancelReservation(ctx context.Context, reservationID, actorID string) error
	GetReservation(ctx context.Context, id string) (domain.Reservation, error)
	ListBySilo(ctx context.Context, siloID string) ([]domain.Reservation, error)
	ListByRequester(ctx context.Context, requesterID string) ([]domain.Reservation, error)
	ListHistory(ctx context.Context, reservationID string) ([]domain.HistoryEntry, error)
}

type createReservationRequest struct {
	SiloID    string          `json:"silo_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
}

type reservationResponse struct {
	ID               string          `json:"id"`
	SiloID           string          `json:"silo_id"`
	RequesterID      string          `json:"requester_id"`
	ReservedCapacity decimal.Decimal `json:"reserved_capacity"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	TotalValue       decimal.Decimal `json:"total_value"`
	Status           string          `json:"status"`
	PaymentStatus    string          `json:"payment_status"`
	CreatedAt        time.Time       `json:"created_at"`
}

func toReservationResponse(res domain.Reservation) reservationResponse {
	return reservationResponse{
		ID:               res.ID,
		SiloID:           res.SiloID,
		RequesterID:      res.RequesterID,
		ReservedCapacity: res.ReservedCapacity,
		StartDate:        res.Period.Start,
		EndDate:          res.Period.End,
		TotalValue:       res.TotalValue,
		Status:           string(res.Status),
		PaymentStatus:    string(res.PaymentStatus),
		CreatedAt:        res.CreatedAt,
	}
}

type historyEntryResponse struct {
	ID        string    `json:"id"`
	ActorID   string    `json:"actor_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HandleCreateReservation claims capacity on a silo for the acting user.
func HandleCreateReservation(svc ReservationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorID(r)
		if actor == "" {
			writeError(w, http.StatusBadRequest, codeActorRequired, "missing "+actorHeader+" header")
			return
		}

		var req createReservationRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.SiloID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidID, "silo_id is required")
			return
		}

		res, err := svc.CreateReservation(r.Context(), app.CreateReservationInput{
			SiloID:      req.SiloID,
			RequesterID: actor,
			Quantity:    req.Quantity,
			Period:      domain.DateRange{Start: req.StartDate, End: req.EndDate},
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toReservationResponse(res))
	}
}

// HandleApproveReservation confirms a pending reservation (silo owner only).
func HandleApproveReservation(svc ReservationService) http.HandlerFunc {
	return transitionHandler(func(ctx context.Context, id, actor string, _ string) error {
		return svc.ApproveReservation(ctx, id, actor)
	})
}

// HandleRejectReservation rejects a pending reservation with an optional
// reason (silo owner only).
func HandleRejectReservation(svc ReservationService) http.HandlerFunc {
	return transitionHandler(func(ctx context.Context, id, actor, reason string) error {
		return svc.RejectReservation(ctx, id, actor, reason)
	})
}

// HandleCancelReservation cancels a reservation (requester only).
func HandleCancelReservation(svc ReservationService) http.HandlerFunc {
	return transitionHandler(func(ctx context.Context, id, actor string, _ string) error {
		return svc.CancelReservation(ctx, id, actor)
	})
}

type transitionRequest struct {
	Reason string `json:"reason"`
}

func transitionHandler(apply func(ctx context.Context, id, actor, reason string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorID(r)
		if actor == "" {
			writeError(w, http.StatusBadRequest, codeActorRequired, "missing "+actorHeader+" header")
			return
		}

		var req transitionRequest
		if r.Body != nil && r.ContentLength != 0 {
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
		}

		if err := apply(r.Context(), chi.URLParam(r, "id"), actor, req.Reason); err != nil {
			writeDomainError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func HandleGetReservation(svc ReservationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.GetReservation(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReservationResponse(res))
	}
}

// HandleListMyReservations lists the acting user's reservations.
func HandleListMyReservations(svc ReservationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorID(r)
		if actor == "" {
			writeError(w, http.StatusBadRequest, codeActorRequired, "missing "+actorHeader+" header")
			return
		}
		list, err := svc.ListByRequester(r.Context(), actor)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReservationList(list))
	}
}

// HandleListSiloReservations lists all reservations of one silo.
func HandleListSiloReservations(svc ReservationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListBySilo(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReservationList(list))
	}
}

// HandleListHistory returns the audit trail of a reservation, newest first.
func HandleListHistory(svc ReservationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.ListHistory(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		out := make([]historyEntryResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, historyEntryResponse{
				ID:        e.ID,
				ActorID:   e.ActorID,
				Action:    string(e.Action),
				Details:   e.Details,
				CreatedAt: e.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toReservationList(list []domain.Reservation) []reservationResponse {
	out := make([]reservationResponse, 0, len(list))
	for _, res := range list {
		out = append(out, toReservationResponse(res))
	}
	return out
}
