package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SiloShare/siloshare-marketplace-sub001/internal/domain"
	"github.com/SiloShare/siloshare-marketplace-sub001/internal/testutil"
)

func TestSiloRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewSiloRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("create and fetch", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		ownerID := testutil.InsertUser(t, ctx, pool, "Dona Marta", "marta@example.com")

		silo := domain.Silo{
			ID:                uuid.NewString(),
			OwnerID:           ownerID,
			Name:              "Silo Central",
			Location:          "Sorriso, MT",
			TotalCapacity:     dec(10000),
			AvailableCapacity: dec(10000),
			PricePerTonne:     decimal.RequireFromString("12.50"),
			CreatedAt:         time.Now().UTC().Truncate(time.Microsecond),
		}
		if err := repo.CreateSilo(ctx, silo); err != nil {
			t.Fatalf("create silo: %v", err)
		}

		got, err := repo.GetSiloByID(ctx, silo.ID)
		if err != nil {
			t.Fatalf("get silo: %v", err)
		}
		if got.Name != silo.Name || got.Location != silo.Location || got.OwnerID != ownerID {
			t.Fatalf("unexpected silo: %+v", got)
		}
		if !got.TotalCapacity.Equal(silo.TotalCapacity) || !got.PricePerTonne.Equal(silo.PricePerTonne) {
			t.Fatalf("unexpected numbers: total=%s price=%s", got.TotalCapacity, got.PricePerTonne)
		}
	})

	t.Run("get not found and invalid id", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		if _, err := repo.GetSiloByID(ctx, uuid.NewString()); err != domain.ErrSiloNotFound {
			t.Fatalf("expected ErrSiloNotFound, got %v", err)
		}
		if _, err := repo.GetSiloByID(ctx, "abc"); err != domain.ErrInvalidID {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})

	t.Run("list returns silos oldest first", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		ownerID := testutil.InsertUser(t, ctx, pool, "Dona Marta", "marta@example.com")

		base := time.Now().UTC().Truncate(time.Microsecond)
		for i, name := range []string{"Silo A", "Silo B", "Silo C"} {
			silo := domain.Silo{
				ID:                uuid.NewString(),
				OwnerID:           ownerID,
				Name:              name,
				TotalCapacity:     dec(1000),
				AvailableCapacity: dec(1000),
				PricePerTonne:     dec(10),
				CreatedAt:         base.Add(time.Duration(i) * time.Second),
			}
			if err := repo.CreateSilo(ctx, silo); err != nil {
				t.Fatalf("create %s: %v", name, err)
			}
		}

		silos, err := repo.ListSilos(ctx)
		if err != nil {
			t.Fatalf("list silos: %v", err)
		}
		if len(silos) != 3 {
			t.Fatalf("expected 3 silos, got %d", len(silos))
		}
		for i, want := range []string{"Silo A", "Silo B", "Silo C"} {
			if silos[i].Name != want {
				t.Fatalf("position %d: expected %s, got %s", i, want, silos[i].Name)
			}
		}
	})
}
