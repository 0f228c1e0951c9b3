package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SiloShare/siloshare-marketplace-sub001/internal/domain"
)

type SiloRepository struct {
	pool *pgxpool.Pool
}

func NewSiloRepository(pool *pgxpool.Pool) *SiloRepository {
	return &SiloRepository{pool: pool}
}

func (r *SiloRepository) CreateSilo(ctx context.Context, silo domain.Silo) error {
	const stmt = `
INSERT INTO silos (id, owner_id, name, location, total_capacity, available_capacity, price_per_tonne, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, stmt,
		silo.ID,
		silo.OwnerID,
		silo.Name,
		silo.Location,
		silo.TotalCapacity,
		silo.AvailableCapacity,
		silo.PricePerTonne,
		silo.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create silo: %w", err)
	}
	return nil
}

func (r *SiloRepository) ListSilos(ctx context.Context) ([]domain.Silo, error) {
	const query = `
SELECT id, owner_id, name, location, total_capacity, available_capacity, price_per_tonne, created_at
FROM silos
ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list silos: %w", err)
	}
	defer rows.Close()

	var silos []domain.Silo
	for rows.Next() {
		var s domain.Silo
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Location, &s.TotalCapacity, &s.AvailableCapacity, &s.PricePerTonne, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan silo: %w", err)
		}
		silos = append(silos, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate silos: %w", rows.Err())
	}
	return silos, nil
}

func (r *SiloRepository) GetSiloByID(ctx context.Context, id string) (domain.Silo, error) {
	const query = `
SELECT id, owner_id, name, location, total_capacity, available_capacity, price_per_tonne, created_at
FROM silos
WHERE id = $1`

	var s domain.Silo
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&s.ID, &s.OwnerID, &s.Name, &s.Location, &s.TotalCapacity, &s.AvailableCapacity, &s.PricePerTonne, &s.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Silo{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Silo{}, domain.ErrSiloNotFound
		}
		return domain.Silo{}, fmt.Errorf("get silo: %w", err)
	}
	return s, nil
}
