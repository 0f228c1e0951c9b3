package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/SiloShare/siloshare-marketplace-sub001/internal/domain"
)

// LedgerStore persists the capacity side of a silo row.
type LedgerStore interface {
	UpdateSiloCapacity(ctx context.Context, siloID string, available decimal.Decimal) error
}

// CapacityLedger is the only writer of a silo's available capacity. Both
// operations expect the silo row to be locked in the caller's transaction
// (GetSiloForUpdate); they mutate the passed value and persist it so the
// caller keeps working with the post-operation state.
type CapacityLedger struct {
	store LedgerStore
}

func NewCapacityLedger(store LedgerStore) *CapacityLedger {
	return &CapacityLedger{store: store}
}

// Debit reserves amount tonnes. It performs no mutation when the silo cannot
// cover the amount.
func (l *CapacityLedger) Debit(ctx context.Context, silo domain.Silo, amount decimal.Decimal) (domain.Silo, error) {
	if !amount.IsPositive() {
		return silo, domain.ErrInvalidQuantity
	}
	if amount.GreaterThan(silo.AvailableCapacity) {
		return silo, domain.ErrInsufficientCapacity
	}
	silo.AvailableCapacity = silo.AvailableCapacity.Sub(amount)
	if err := l.store.UpdateSiloCapacity(ctx, silo.ID, silo.AvailableCapacity); err != nil {
		return silo, err
	}
	return silo, nil
}

// Credit returns amount tonnes to the silo. A credit that would push the
// available capacity past the total indicates a double credit somewhere and
// aborts with ErrCapacityOverflow instead of corrupting the ledger.
func (l *CapacityLedger) Credit(ctx context.Context, silo domain.Silo, amount decimal.Decimal) (domain.Silo, error) {
	if !amount.IsPositive() {
		return silo, domain.ErrInvalidQuantity
	}
	next := silo.AvailableCapacity.Add(amount)
	if next.GreaterThan(silo.TotalCapacity) {
		return silo, domain.ErrCapacityOverflow
	}
	silo.AvailableCapacity = next
	if err := l.store.UpdateSiloCapacity(ctx, silo.ID, silo.AvailableCapacity); err != nil {
		return silo, err
	}
	return silo, nil
}
