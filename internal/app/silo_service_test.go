package app

import (
	"context"
	"testing"

	"github.com/SiloShare/siloshare-marketplace-sub001/internal/clock"
	"github.com/SiloShare/siloshare-marketplace-sub001/internal/domain"
)

type fakeSiloRepo struct {
	silos []domain.Silo
}

func (f *fakeSiloRepo) CreateSilo(_ context.Context, silo domain.Silo) error {
	f.silos = append(f.silos, silo)
	return nil
}

func (f *fakeSiloRepo) ListSilos(_ context.Context) ([]domain.Silo, error) {
	return f.silos, nil
}

func (f *fakeSiloRepo) GetSiloByID(_ context.Context, id string) (domain.Silo, error) {
	for _, s := range f.silos {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.Silo{}, domain.ErrSiloNotFound
}

func TestSiloService_CreateSilo(t *testing.T) {
	t.Parallel()

	now := testNow()

	t.Run("publishes silo with full availability", func(t *testing.T) {
		repo := &fakeSiloRepo{}
		svc := NewSiloService(repo, clock.NewFixed(now))

		silo, err := svc.CreateSilo(context.Background(), CreateSiloInput{
			OwnerID:       ownerID,
			Name:          "Silo Central",
			Location:      "Sorriso, MT",
			TotalCapacity: dec(10000),
			PricePerTonne: dec(12),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if silo.ID == "" {
			t.Fatalf("expected silo ID to be set")
		}
		if !silo.AvailableCapacity.Equal(silo.TotalCapacity) {
			t.Fatalf("expected available == total, got %s / %s", silo.AvailableCapacity, silo.TotalCapacity)
		}
		if len(repo.silos) != 1 {
			t.Fatalf("expected 1 persisted silo, got %d", len(repo.silos))
		}
	})

	t.Run("rejects missing owner", func(t *testing.T) {
		svc := NewSiloService(&fakeSiloRepo{}, clock.NewFixed(now))

		_, err := svc.CreateSilo(context.Background(), CreateSiloInput{
			Name:          "Silo Central",
			TotalCapacity: dec(10000),
		})
		if err != domain.ErrInvalidID {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})

	t.Run("rejects missing name", func(t *testing.T) {
		svc := NewSiloService(&fakeSiloRepo{}, clock.NewFixed(now))

		_, err := svc.CreateSilo(context.Background(), CreateSiloInput{
			OwnerID:       ownerID,
			TotalCapacity: dec(10000),
		})
		if err != domain.ErrSiloNameRequired {
			t.Fatalf("expected ErrSiloNameRequired, got %v", err)
		}
	})

	t.Run("rejects non-positive capacity", func(t *testing.T) {
		svc := NewSiloService(&fakeSiloRepo{}, clock.NewFixed(now))

		_, err := svc.CreateSilo(context.Background(), CreateSiloInput{
			OwnerID:       ownerID,
			Name:          "Silo Central",
			TotalCapacity: dec(0),
		})
		if err != domain.ErrInvalidCapacity {
			t.Fatalf("expected ErrInvalidCapacity, got %v", err)
		}
	})

	t.Run("rejects negative price", func(t *testing.T) {
		svc := NewSiloService(&fakeSiloRepo{}, clock.NewFixed(now))

		_, err := svc.CreateSilo(context.Background(), CreateSiloInput{
			OwnerID:       ownerID,
			Name:          "Silo Central",
			TotalCapacity: dec(10000),
			PricePerTonne: dec(-1),
		})
		if err != domain.ErrInvalidCapacity {
			t.Fatalf("expected ErrInvalidCapacity, got %v", err)
		}
	})
}

func TestSiloService_GetSilo(t *testing.T) {
	t.Parallel()

	repo := &fakeSiloRepo{silos: []domain.Silo{{ID: "silo-1", OwnerID: ownerID}}}
	svc := NewSiloService(repo, clock.NewFixed(testNow()))

	if _, err := svc.GetSilo(context.Background(), "silo-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.GetSilo(context.Background(), ""); err != domain.ErrInvalidID {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, err := svc.GetSilo(context.Background(), "silo-2"); err != domain.ErrSiloNotFound {
		t.Fatalf("expected ErrSiloNotFound, got %v", err)
	}
}
