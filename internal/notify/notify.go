package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventReservaCriada    EventType = "reserva_criada"
	EventReservaAprovada  EventType = "reserva_aprovada"
	EventReservaRejeitada EventType = "reserva_rejeitada"
	EventReservaCancelada EventType = "reserva_cancelada"
)

// Event carries everything a delivery channel needs to render a message
// about a reservation transition.
type Event struct {
	Type            EventType
	ReservationID   string
	RecipientName   string
	RecipientEmail  string
	CounterpartName string
	SiloName        string
	Quantity        decimal.Decimal
	StartDate       time.Time
	EndDate         time.Time
	TotalValue      decimal.Decimal
	Reason          string
}

// Notifier is the sink for reservation events. Delivery is best-effort: the
// allocation engine logs a failed Notify and never rolls back the committed
// transition.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// LogNotifier writes events to the structured log. It stands in for the real
// delivery pipeline (email, etc.) which consumes the same Event shape.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, event Event) error {
	n.logger.InfoContext(ctx, "notification",
		slog.String("type", string(event.Type)),
		slog.String("reservation_id", event.ReservationID),
		slog.String("recipient", event.RecipientEmail),
		slog.String("silo", event.SiloName),
		slog.String("quantity", event.Quantity.String()),
		slog.Time("start_date", event.StartDate),
		slog.Time("end_date", event.EndDate),
		slog.String("total_value", event.TotalValue.String()),
		slog.String("reason", event.Reason),
	)
	return nil
}
