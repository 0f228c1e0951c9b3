package app

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/SiloShare/siloshare-marketplace-sub001/internal/clock"
	"github.com/SiloShare/siloshare-marketplace-sub001/internal/domain"
	"github.com/SiloShare/siloshare-marketplace-sub001/internal/notify"
)

// ReservationRepository is the persistence surface the allocation engine
// needs. All writes of one operation happen inside a single WithTx call;
// GetSiloForUpdate and GetReservationForUpdate take row locks so concurrent
// operations on the same silo serialize.
type ReservationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetSiloForUpdate(ctx context.Context, siloID string) (domain.Silo, error)
	GetSiloByID(ctx context.Context, siloID string) (domain.Silo, error)
	UpdateSiloCapacity(ctx context.Context, siloID string, available decimal.Decimal) error
	HasOverlappingReservation(ctx context.Context, siloID string, period domain.DateRange) (bool, error)
	CreateReservation(ctx context.Context, res domain.Reservation) error
	GetReservationByID(ctx context.Context, id string) (domain.Reservation, error)
	GetReservationForUpdate(ctx context.Context, id string) (domain.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id string, status domain.ReservationStatus) error
	InsertHistoryEntry(ctx context.Context, entry domain.HistoryEntry) error
	ListHistoryByReservation(ctx context.Context, reservationID string) ([]domain.HistoryEntry, error)
	ListReservationsBySilo(ctx context.Context, siloID string) ([]domain.Reservation, error)
	ListReservationsByRequester(ctx context.Context, requesterID string) ([]domain.Reservation, error)
	GetUserByID(ctx context.Context, id string) (domain.User, error)
}

// ReservationService orchestrates the capacity ledger, conflict detector,
// state machine and history recorder for each reservation use case.
type ReservationService struct {
	repo      ReservationRepository
	ledger    *CapacityLedger
	conflicts *ConflictDetector
	history   *HistoryRecorder
	notifier  notify.Notifier
	clock     clock.Clock
	logger    *slog.Logger
}

func NewReservationService(repo ReservationRepository, notifier notify.Notifier, clk clock.Clock, logger *slog.Logger) *ReservationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReservationService{
		repo:      repo,
		ledger:    NewCapacityLedger(repo),
		conflicts: NewConflictDetector(repo),
		history:   NewHistoryRecorder(repo, clk),
		notifier:  notifier,
		clock:     clk,
		logger:    logger,
	}
}

type CreateReservationInput struct {
	SiloID      string
	RequesterID string
	Quantity    decimal.Decimal
	Period      domain.DateRange
}

// CreateReservation grants or denies a new claim on a silo. The capacity
// read, conflict check, debit and insert run in one transaction under the
// silo row lock, so two concurrent requests can never both debit the last
// tonnes.
func (s *ReservationService) CreateReservation(ctx context.Context, in CreateReservationInput) (domain.Reservation, error) {
	if !in.Quantity.IsPositive() {
		return domain.Reservation{}, domain.ErrInvalidQuantity
	}
	if err := in.Period.Validate(); err != nil {
		return domain.Reservation{}, err
	}

	var res domain.Reservation
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		silo, err := s.repo.GetSiloForUpdate(txCtx, in.SiloID)
		if err != nil {
			return err
		}

		conflict, err := s.conflicts.HasConflict(txCtx, in.SiloID, in.Period)
		if err != nil {
			return err
		}
		if conflict {
			return domain.ErrDateConflict
		}

		silo, err = s.ledger.Debit(txCtx, silo, in.Quantity)
		if err != nil {
			return err
		}

		res = domain.Reservation{
			ID:               newID(),
			SiloID:           in.SiloID,
			RequesterID:      in.RequesterID,
			ReservedCapacity: in.Quantity,
			Period:           in.Period,
			TotalValue:       in.Quantity.Mul(silo.PricePerTonne).Round(2),
			Status:           domain.StatusPendente,
			PaymentStatus:    domain.PaymentPendente,
			CreatedAt:        s.clock.Now(),
		}
		if err := s.repo.CreateReservation(txCtx, res); err != nil {
			return err
		}
		return s.history.Record(txCtx, res.ID, in.RequesterID, domain.ActionCriada, "")
	})
	if err != nil {
		return domain.Reservation{}, err
	}

	s.sendEvent(ctx, notify.EventReservaCriada, res, "")
	return res, nil
}

// ApproveReservation moves pendente to confirmada. Only the silo owner may
// approve; capacity is untouched because pendente already holds it.
func (s *ReservationService) ApproveReservation(ctx context.Context, reservationID, actorID string) error {
	var res domain.Reservation
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		res, err = s.repo.GetReservationForUpdate(txCtx, reservationID)
		if err != nil {
			return err
		}
		silo, err := s.repo.GetSiloByID(txCtx, res.SiloID)
		if err != nil {
			return err
		}
		if silo.OwnerID != actorID {
			return domain.ErrForbidden
		}
		if err := res.Status.Transition(domain.StatusConfirmada); err != nil {
			return err
		}
		if err := s.repo.UpdateReservationStatus(txCtx, res.ID, domain.StatusConfirmada); err != nil {
			return err
		}
		res.Status = domain.StatusConfirmada
		return s.history.Record(txCtx, res.ID, actorID, domain.ActionAprovada, "")
	})
	if err != nil {
		return err
	}

	s.sendEvent(ctx, notify.EventReservaAprovada, res, "")
	return nil
}

// RejectReservation moves pendente to rejeitada and returns the held
// capacity to the silo. Only the silo owner may reject.
func (s *ReservationService) RejectReservation(ctx context.Context, reservationID, actorID, reason string) error {
	var res domain.Reservation
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		res, err = s.repo.GetReservationForUpdate(txCtx, reservationID)
		if err != nil {
			return err
		}
		silo, err := s.repo.GetSiloForUpdate(txCtx, res.SiloID)
		if err != nil {
			return err
		}
		if silo.OwnerID != actorID {
			return domain.ErrForbidden
		}
		if err := res.Status.Transition(domain.StatusRejeitada); err != nil {
			return err
		}
		if res.Status.HoldsCapacity() {
			if _, err := s.ledger.Credit(txCtx, silo, res.ReservedCapacity); err != nil {
				return err
			}
		}
		if err := s.repo.UpdateReservationStatus(txCtx, res.ID, domain.StatusRejeitada); err != nil {
			return err
		}
		res.Status = domain.StatusRejeitada
		return s.history.Record(txCtx, res.ID, actorID, domain.ActionRejeitada, reason)
	})
	if err != nil {
		return err
	}

	s.sendEvent(ctx, notify.EventReservaRejeitada, res, reason)
	return nil
}

// CancelReservation moves pendente or confirmada to cancelada and credits
// the capacity back. Only the original requester may cancel.
func (s *ReservationService) CancelReservation(ctx context.Context, reservationID, actorID string) error {
	var res domain.Reservation
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		res, err = s.repo.GetReservationForUpdate(txCtx, reservationID)
		if err != nil {
			return err
		}
		if res.RequesterID != actorID {
			return domain.ErrForbidden
		}
		silo, err := s.repo.GetSiloForUpdate(txCtx, res.SiloID)
		if err != nil {
			return err
		}
		if err := res.Status.Transition(domain.StatusCancelada); err != nil {
			return err
		}
		if res.Status.HoldsCapacity() {
			if _, err := s.ledger.Credit(txCtx, silo, res.ReservedCapacity); err != nil {
				return err
			}
		}
		if err := s.repo.UpdateReservationStatus(txCtx, res.ID, domain.StatusCancelada); err != nil {
			return err
		}
		res.Status = domain.StatusCancelada
		return s.history.Record(txCtx, res.ID, actorID, domain.ActionCancelada, "")
	})
	if err != nil {
		return err
	}

	s.sendEvent(ctx, notify.EventReservaCancelada, res, "")
	return nil
}

func (s *ReservationService) GetReservation(ctx context.Context, id string) (domain.Reservation, error) {
	return s.repo.GetReservationByID(ctx, id)
}

func (s *ReservationService) ListBySilo(ctx context.Context, siloID string) ([]domain.Reservation, error) {
	return s.repo.ListReservationsBySilo(ctx, siloID)
}

func (s *ReservationService) ListByRequester(ctx context.Context, requesterID string) ([]domain.Reservation, error) {
	return s.repo.ListReservationsByRequester(ctx, requesterID)
}

func (s *ReservationService) ListHistory(ctx context.Context, reservationID string) ([]domain.HistoryEntry, error) {
	return s.repo.ListHistoryByReservation(ctx, reservationID)
}

// sendEvent builds and delivers the notification for a committed transition.
// Failures are logged and swallowed: delivery problems must never surface to
// the caller or undo the allocation decision.
func (s *ReservationService) sendEvent(ctx context.Context, eventType notify.EventType, res domain.Reservation, reason string) {
	silo, err := s.repo.GetSiloByID(ctx, res.SiloID)
	if err != nil {
		s.logger.WarnContext(ctx, "notification skipped: silo lookup failed",
			slog.String("reservation_id", res.ID), slog.Any("error", err))
		return
	}

	// The requester hears about owner decisions; the owner hears about
	// requester actions.
	recipientID, counterpartID := res.RequesterID, silo.OwnerID
	if eventType == notify.EventReservaCriada || eventType == notify.EventReservaCancelada {
		recipientID, counterpartID = silo.OwnerID, res.RequesterID
	}

	recipient, err := s.repo.GetUserByID(ctx, recipientID)
	if err != nil {
		s.logger.WarnContext(ctx, "notification skipped: recipient lookup failed",
			slog.String("reservation_id", res.ID), slog.Any("error", err))
		return
	}
	counterpart, err := s.repo.GetUserByID(ctx, counterpartID)
	if err != nil {
		s.logger.WarnContext(ctx, "notification skipped: counterpart lookup failed",
			slog.String("reservation_id", res.ID), slog.Any("error", err))
		return
	}

	event := notify.Event{
		Type:            eventType,
		ReservationID:   res.ID,
		RecipientName:   recipient.Name,
		RecipientEmail:  recipient.Email,
		CounterpartName: counterpart.Name,
		SiloName:        silo.Name,
		Quantity:        res.ReservedCapacity,
		StartDate:       res.Period.Start,
		EndDate:         res.Period.End,
		TotalValue:      res.TotalValue,
		Reason:          reason,
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "notification delivery failed",
			slog.String("reservation_id", res.ID),
			slog.String("type", string(eventType)),
			slog.Any("error", err))
	}
}
