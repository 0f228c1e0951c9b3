package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/SiloShare/siloshare-marketplace-sub001/internal/domain"
)

const (
	codeNotFound             = "not_found"
	codeInvalidRequestBody   = "invalid_request_body"
	codeActorRequired        = "actor_required"
	codeInvalidID            = "invalid_id"
	codeSiloNameRequired     = "silo_name_required"
	codeInvalidCapacity      = "invalid_capacity"
	codeInvalidQuantity      = "invalid_quantity"
	codeInvalidDateRange     = "invalid_date_range"
	codeSiloNotFound         = "silo_not_found"
	codeReservationNotFound  = "reservation_not_found"
	codeDateConflict         = "date_conflict"
	codeInsufficientCapacity = "insufficient_capacity"
	codeAlreadyApproved      = "already_approved"
	codeAlreadyRejected      = "already_rejected"
	codeAlreadyCancelled     = "already_cancelled"
	codeInvalidTransition    = "invalid_transition"
	codeForbidden            = "forbidden"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{Error: msg, Code: code})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps engine sentinel errors onto HTTP statuses and codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrSiloNameRequired):
		writeError(w, http.StatusBadRequest, codeSiloNameRequired, err.Error())
	case errors.Is(err, domain.ErrInvalidCapacity):
		writeError(w, http.StatusBadRequest, codeInvalidCapacity, err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
	case errors.Is(err, domain.ErrInvalidDateRange):
		writeError(w, http.StatusBadRequest, codeInvalidDateRange, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, codeForbidden, err.Error())
	case errors.Is(err, domain.ErrSiloNotFound):
		writeError(w, http.StatusNotFound, codeSiloNotFound, err.Error())
	case errors.Is(err, domain.ErrReservationNotFound):
		writeError(w, http.StatusNotFound, codeReservationNotFound, err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, domain.ErrDateConflict):
		writeError(w, http.StatusConflict, codeDateConflict, err.Error())
	case errors.Is(err, domain.ErrInsufficientCapacity):
		writeError(w, http.StatusConflict, codeInsufficientCapacity, err.Error())
	case errors.Is(err, domain.ErrAlreadyApproved):
		writeError(w, http.StatusConflict, codeAlreadyApproved, err.Error())
	case errors.Is(err, domain.ErrAlreadyRejected):
		writeError(w, http.StatusConflict, codeAlreadyRejected, err.Error())
	case errors.Is(err, domain.ErrAlreadyCancelled):
		writeError(w, http.StatusConflict, codeAlreadyCancelled, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		writeError(w, http.StatusConflict, codeInvalidTransition, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
