package domain

import "time"

type HistoryAction string

const (
	ActionCriada    HistoryAction = "criada"
	ActionAprovada  HistoryAction = "aprovada"
	ActionRejeitada HistoryAction = "rejeitada"
	ActionCancelada HistoryAction = "cancelada"
)

// HistoryEntry is one immutable audit record of a transition applied to a
// reservation. Entries are append-only and listed newest-first.
type HistoryEntry struct {
	ID            string
	ReservationID string
	ActorID       string
	Action        HistoryAction
	Details       string
	CreatedAt     time.Time
}
