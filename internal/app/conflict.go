package app

import (
	"context"

	"github.com/SiloShare/siloshare-marketplace-sub001/internal/domain"
)

// ConflictStore answers overlap queries against a silo's reservations.
type ConflictStore interface {
	HasOverlappingReservation(ctx context.Context, siloID string, period domain.DateRange) (bool, error)
}

// ConflictDetector decides whether a requested period collides with any
// capacity-holding reservation on the same silo. Ranges are inclusive on
// both ends, so a reservation ending on a given day conflicts with one
// starting that same day.
type ConflictDetector struct {
	store ConflictStore
}

func NewConflictDetector(store ConflictStore) *ConflictDetector {
	return &ConflictDetector{store: store}
}

func (d *ConflictDetector) HasConflict(ctx context.Context, siloID string, period domain.DateRange) (bool, error) {
	return d.store.HasOverlappingReservation(ctx, siloID, period)
}
