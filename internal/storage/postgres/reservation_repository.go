package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SiloShare/siloshare-marketplace-sub001/internal/domain"
)

// ReservationRepository backs the allocation engine. Methods run inside the
// transaction carried by the context when one is open, so a WithTx body and
// its reads/writes share one unit of work.
type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

func (r *ReservationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// GetSiloForUpdate locks the silo row for the rest of the transaction. Every
// capacity-affecting operation goes through this lock, which is what keeps
// concurrent requests on the same silo from overselling it.
func (r *ReservationRepository) GetSiloForUpdate(ctx context.Context, siloID string) (domain.Silo, error) {
	const query = `
SELECT id, owner_id, name, location, total_capacity, available_capacity, price_per_tonne, created_at
FROM silos
WHERE id = $1
FOR UPDATE`

	var s domain.Silo
	err := r.queryRow(ctx, query, siloID).
		Scan(&s.ID, &s.OwnerID, &s.Name, &s.Location, &s.TotalCapacity, &s.AvailableCapacity, &s.PricePerTonne, &s.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Silo{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Silo{}, domain.ErrSiloNotFound
		}
		return domain.Silo{}, fmt.Errorf("get silo for update: %w", err)
	}
	return s, nil
}

func (r *ReservationRepository) GetSiloByID(ctx context.Context, siloID string) (domain.Silo, error) {
	const query = `
SELECT id, owner_id, name, location, total_capacity, available_capacity, price_per_tonne, created_at
FROM silos
WHERE id = $1`

	var s domain.Silo
	err := r.queryRow(ctx, query, siloID).
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

func (r *ReservationRepository) UpdateSiloCapacity(ctx context.Context, siloID string, available decimal.Decimal) error {
	const stmt = `UPDATE silos SET available_capacity = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, siloID, available)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrCapacityOverflow
		}
		return fmt.Errorf("update silo capacity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSiloNotFound
	}
	return nil
}

// HasOverlappingReservation checks the closed-interval overlap predicate
// against capacity-holding reservations of the silo. Terminal reservations
// never block a new request.
func (r *ReservationRepository) HasOverlappingReservation(ctx context.Context, siloID string, period domain.DateRange) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1
	FROM reservations
	WHERE silo_id = $1
	  AND status IN ('pendente', 'confirmada')
	  AND start_date <= $3
	  AND end_date >= $2
)`

	var exists bool
	if err := r.queryRow(ctx, query, siloID, period.Start, period.End).Scan(&exists); err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, fmt.Errorf("check overlapping reservations: %w", err)
	}
	return exists, nil
}

func (r *ReservationRepository) CreateReservation(ctx context.Context, res domain.Reservation) error {
	const stmt = `
INSERT INTO reservations (id, silo_id, requester_id, reserved_capacity, start_date, end_date, total_value, status, payment_status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.exec(ctx, stmt,
		res.ID,
		res.SiloID,
		res.RequesterID,
		res.ReservedCapacity,
		res.Period.Start,
		res.Period.End,
		res.TotalValue,
		res.Status,
		res.PaymentStatus,
		res.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepository) GetReservationByID(ctx context.Context, id string) (domain.Reservation, error) {
	return r.getReservation(ctx, id, false)
}

func (r *ReservationRepository) GetReservationForUpdate(ctx context.Context, id string) (domain.Reservation, error) {
	return r.getReservation(ctx, id, true)
}

func (r *ReservationRepository) getReservation(ctx context.Context, id string, forUpdate bool) (domain.Reservation, error) {
	query := `
SELECT id, silo_id, requester_id, reserved_capacity, start_date, end_date, total_value, status, payment_status, created_at
FROM reservations
WHERE id = $1`
	if forUpdate {
		query += `
FOR UPDATE`
	}

	var res domain.Reservation
	var status, paymentStatus string
	err := r.queryRow(ctx, query, id).Scan(
		&res.ID,
		&res.SiloID,
		&res.RequesterID,
		&res.ReservedCapacity,
		&res.Period.Start,
		&res.Period.End,
		&res.TotalValue,
		&status,
		&paymentStatus,
		&res.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Reservation{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Reservation{}, domain.ErrReservationNotFound
		}
		return domain.Reservation{}, fmt.Errorf("get reservation: %w", err)
	}
	res.Status = domain.ReservationStatus(status)
	res.PaymentStatus = domain.PaymentStatus(paymentStatus)
	return res, nil
}

func (r *ReservationRepository) UpdateReservationStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	const stmt = `UPDATE reservations SET status = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, id, status)
	if err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (r *ReservationRepository) InsertHistoryEntry(ctx context.Context, entry domain.HistoryEntry) error {
	const stmt = `
INSERT INTO reservation_history (id, reservation_id, actor_id, action, details, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.exec(ctx, stmt,
		entry.ID,
		entry.ReservationID,
		entry.ActorID,
		entry.Action,
		entry.Details,
		entry.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

func (r *ReservationRepository) ListHistoryByReservation(ctx context.Context, reservationID string) ([]domain.HistoryEntry, error) {
	const query = `
SELECT id, reservation_id, actor_id, action, details, created_at
FROM reservation_history
WHERE reservation_id = $1
ORDER BY created_at DESC`

	rows, err := r.query(ctx, query, reservationID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		var action string
		if err := rows.Scan(&e.ID, &e.ReservationID, &e.ActorID, &action, &e.Details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		e.Action = domain.HistoryAction(action)
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate history: %w", rows.Err())
	}
	return entries, nil
}

func (r *ReservationRepository) ListReservationsBySilo(ctx context.Context, siloID string) ([]domain.Reservation, error) {
	const query = `
SELECT id, silo_id, requester_id, reserved_capacity, start_date, end_date, total_value, status, payment_status, created_at
FROM reservations
WHERE silo_id = $1
ORDER BY created_at DESC`
	return r.listReservations(ctx, query, siloID)
}

func (r *ReservationRepository) ListReservationsByRequester(ctx context.Context, requesterID string) ([]domain.Reservation, error) {
	const query = `
SELECT id, silo_id, requester_id, reserved_capacity, start_date, end_date, total_value, status, payment_status, created_at
FROM reservations
WHERE requester_id = $1
ORDER BY created_at DESC`
	return r.listReservations(ctx, query, requesterID)
}

func (r *ReservationRepository) listReservations(ctx context.Context, query, arg string) ([]domain.Reservation, error) {
	rows, err := r.query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		var status, paymentStatus string
		if err := rows.Scan(
			&res.ID,
			&res.SiloID,
			&res.RequesterID,
			&res.ReservedCapacity,
			&res.Period.Start,
			&res.Period.End,
			&res.TotalValue,
			&status,
			&paymentStatus,
			&res.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		res.Status = domain.ReservationStatus(status)
		res.PaymentStatus = domain.PaymentStatus(paymentStatus)
		out = append(out, res)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate reservations: %w", rows.Err())
	}
	return out, nil
}

func (r *ReservationRepository) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	const query = `SELECT id, name, email FROM users WHERE id = $1`

	var u domain.User
	err := r.queryRow(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.User{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *ReservationRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ReservationRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *ReservationRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
