package app

import (
	"context"

	"github.com/SiloShare/siloshare-marketplace-sub001/internal/clock"
	"github.com/SiloShare/siloshare-marketplace-sub001/internal/domain"
)

// HistoryStore appends audit rows.
type HistoryStore interface {
	InsertHistoryEntry(ctx context.Context, entry domain.HistoryEntry) error
}

// HistoryRecorder appends one audit entry per transition. Callers invoke it
// inside the same transaction as the transition so the audit trail cannot
// drift from the reservation state.
type HistoryRecorder struct {
	store HistoryStore
	clock clock.Clock
}

func NewHistoryRecorder(store HistoryStore, clk clock.Clock) *HistoryRecorder {
	return &HistoryRecorder{store: store, clock: clk}
}

func (r *HistoryRecorder) Record(ctx context.Context, reservationID, actorID string, action domain.HistoryAction, details string) error {
	return r.store.InsertHistoryEntry(ctx, domain.HistoryEntry{
		ID:            newID(),
		ReservationID: reservationID,
		ActorID:       actorID,
		Action:        action,
		Details:       details,
		CreatedAt:     r.clock.Now(),
	})
}
