package domain

import "errors"

var (
	ErrSiloNotFound         = errors.New("silo not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrInsufficientCapacity = errors.New("insufficient capacity")
	ErrCapacityOverflow     = errors.New("capacity credit exceeds silo total")
	ErrDateConflict         = errors.New("date range conflicts with an existing reservation")
	ErrInvalidDateRange     = errors.New("invalid date range")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrInvalidCapacity      = errors.New("invalid capacity")
	ErrSiloNameRequired     = errors.New("silo name required")
	ErrForbidden            = errors.New("actor not allowed to perform this transition")
	ErrAlreadyApproved      = errors.New("reservation already approved")
	ErrAlreadyRejected      = errors.New("reservation already rejected")
	ErrAlreadyCancelled     = errors.New("reservation already cancelled")
	ErrInvalidTransition    = errors.New("invalid reservation transition")
	ErrInvalidID            = errors.New("invalid id")
)
