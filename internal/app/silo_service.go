package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/SiloShare/siloshare-marketplace-sub001/internal/clock"
	"github.com/SiloShare/siloshare-marketplace-sub001/internal/domain"
)

type SiloRepository interface {
	CreateSilo(ctx context.Context, silo domain.Silo) error
	ListSilos(ctx context.Context) ([]domain.Silo, error)
	GetSiloByID(ctx context.Context, id string) (domain.Silo, error)
}

// SiloService is the supply side of the marketplace: owners publish silos
// whose capacity the allocation engine then manages.
type SiloService struct {
	repo  SiloRepository
	clock clock.Clock
}

func NewSiloService(repo SiloRepository, clk clock.Clock) *SiloService {
	return &SiloService{repo: repo, clock: clk}
}

type CreateSiloInput struct {
	OwnerID       string
	Name          string
	Location      string
	TotalCapacity decimal.Decimal
	PricePerTonne decimal.Decimal
}

func (s *SiloService) CreateSilo(ctx context.Context, in CreateSiloInput) (domain.Silo, error) {
	if in.OwnerID == "" {
		return domain.Silo{}, domain.ErrInvalidID
	}
	if in.Name == "" {
		return domain.Silo{}, domain.ErrSiloNameRequired
	}
	if !in.TotalCapacity.IsPositive() {
		return domain.Silo{}, domain.ErrInvalidCapacity
	}
	if in.PricePerTonne.IsNegative() {
		return domain.Silo{}, domain.ErrInvalidCapacity
	}

	silo := domain.Silo{
		ID:                newID(),
		OwnerID:           in.OwnerID,
		Name:              in.Name,
		Location:          in.Location,
		TotalCapacity:     in.TotalCapacity,
		AvailableCapacity: in.TotalCapacity,
		PricePerTonne:     in.PricePerTonne,
		CreatedAt:         s.clock.Now(),
	}
	if err := s.repo.CreateSilo(ctx, silo); err != nil {
		return domain.Silo{}, err
	}
	return silo, nil
}

func (s *SiloService) ListSilos(ctx context.Context) ([]domain.Silo, error) {
	return s.repo.ListSilos(ctx)
}

func (s *SiloService) GetSilo(ctx context.Context, id string) (domain.Silo, error) {
	if id == "" {
		return domain.Silo{}, domain.ErrInvalidID
	}
	return s.repo.GetSiloByID(ctx, id)
}
