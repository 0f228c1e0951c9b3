package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReservationStatus string

const (
	StatusPendente   ReservationStatus = "pendente"
	StatusConfirmada ReservationStatus = "confirmada"
	StatusRejeitada  ReservationStatus = "rejeitada"
	StatusCancelada  ReservationStatus = "cancelada"

	// Declared by the schema but not produced by any transition yet.
	StatusEmAndamento ReservationStatus = "em_andamento"
	StatusConcluida   ReservationStatus = "concluida"
)

type PaymentStatus string

const PaymentPendente PaymentStatus = "pendente"

// Reservation is a producer's claim on a quantity of a silo's capacity for an
// inclusive date range. ReservedCapacity, the period and TotalValue are fixed
// at creation; only Status moves, through Transition.
type Reservation struct {
	ID               string
	SiloID           string
	RequesterID      string
	ReservedCapacity decimal.Decimal
	Period           DateRange
	TotalValue       decimal.Decimal
	Status           ReservationStatus
	PaymentStatus    PaymentStatus
	CreatedAt        time.Time
}

// HoldsCapacity reports whether the status counts against the silo's
// available capacity.
func (s ReservationStatus) HoldsCapacity() bool {
	return s == StatusPendente || s == StatusConfirmada
}

// IsTerminal reports whether no further transition is permitted.
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusRejeitada || s == StatusCancelada
}

// Transition validates moving from s to target and returns the typed error
// for the transitions the engine refuses. Re-applying a transition whose
// target equals the current status is reported as the matching Already*
// error, never as a silent success.
func (s ReservationStatus) Transition(target ReservationStatus) error {
	if s == target {
		return duplicateTransition(target)
	}
	if s.IsTerminal() {
		return ErrInvalidTransition
	}
	switch target {
	case StatusConfirmada, StatusRejeitada:
		if s != StatusPendente {
			return ErrInvalidTransition
		}
	case StatusCancelada:
		if s != StatusPendente && s != StatusConfirmada {
			return ErrInvalidTransition
		}
	default:
		return ErrInvalidTransition
	}
	return nil
}

func duplicateTransition(target ReservationStatus) error {
	switch target {
	case StatusConfirmada:
		return ErrAlreadyApproved
	case StatusRejeitada:
		return ErrAlreadyRejected
	case StatusCancelada:
		return ErrAlreadyCancelled
	default:
		return ErrInvalidTransition
	}
}
