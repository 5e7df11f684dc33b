package repository

import (
	"context"
	"fmt"
	"time"

	"carwash-booking/internal/data/entity"
	"carwash-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error)
	CountAll(ctx context.Context) (int64, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindByWasherID(ctx context.Context, washerID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByWasherID(ctx context.Context, washerID uuid.UUID) (int64, error)

	// UpdateStatusFrom applies a transition only when the row is still at
	// the expected status. Returns false when another actor won the race.
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, washerID *uuid.UUID) (bool, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error

	// Job queries
	FindScheduledBetween(ctx context.Context, status entity.BookingStatus, start, end time.Time) ([]*entity.Booking, error)
	FindStalePending(ctx context.Context, before time.Time) ([]*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, user_id, washer_id, plan_id, status, scheduled_date, scheduled_time,
		address, latitude, longitude, total_amount, payment_status, notes, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.WasherID,
		&booking.PlanID,
		&booking.Status,
		&booking.ScheduledDate,
		&booking.ScheduledTime,
		&booking.Address,
		&booking.Latitude,
		&booking.Longitude,
		&booking.TotalAmount,
		&booking.PaymentStatus,
		&booking.Notes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) collectBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.WasherID,
		booking.PlanID,
		booking.Status,
		booking.ScheduledDate,
		booking.ScheduledTime,
		booking.Address,
		booking.Latitude,
		booking.Longitude,
		booking.TotalAmount,
		booking.PaymentStatus,
		booking.Notes,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return r.collectBookings(rows)
}

func (r *bookingRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}

	return r.collectBookings(rows)
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}
	return count, nil
}

func (r *bookingRepository) FindByWasherID(ctx context.Context, washerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE washer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, washerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by washer ID",
			zap.Error(err),
			zap.String("washer_id", washerID.String()),
		)
		return nil, fmt.Errorf("find bookings by washer ID %s: %w", washerID.String(), err)
	}

	return r.collectBookings(rows)
}

func (r *bookingRepository) CountByWasherID(ctx context.Context, washerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE washer_id = $1`, washerID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by washer ID",
			zap.Error(err),
			zap.String("washer_id", washerID.String()),
		)
		return 0, fmt.Errorf("count bookings by washer ID %s: %w", washerID.String(), err)
	}
	return count, nil
}

func (r *bookingRepository) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, washerID *uuid.UUID) (bool, error) {
	// The status guard in the WHERE clause makes the backend the arbiter
	// of transition races: of two concurrent actors exactly one matches.
	query := `
		UPDATE bookings
		SET status = $3, washer_id = COALESCE(washer_id, $4), updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.Exec(ctx, query, id, from, to, washerID)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("update booking %s status to %s: %w", id.String(), string(to), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error {
	query := `UPDATE bookings SET payment_status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update booking payment status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("payment_status", string(status)),
		)
		return fmt.Errorf("update booking %s payment status: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}

func (r *bookingRepository) FindScheduledBetween(ctx context.Context, status entity.BookingStatus, start, end time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = $1
		  AND scheduled_date + scheduled_time::time >= $2
		  AND scheduled_date + scheduled_time::time < $3
		ORDER BY scheduled_date, scheduled_time
	`

	rows, err := r.db.Query(ctx, query, status, start, end)
	if err != nil {
		r.log.Error("Failed to find scheduled bookings", zap.Error(err))
		return nil, fmt.Errorf("find scheduled bookings: %w", err)
	}

	return r.collectBookings(rows)
}

func (r *bookingRepository) FindStalePending(ctx context.Context, before time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'pending'
		  AND scheduled_date + scheduled_time::time < $1
	`

	rows, err := r.db.Query(ctx, query, before)
	if err != nil {
		r.log.Error("Failed to find stale pending bookings", zap.Error(err))
		return nil, fmt.Errorf("find stale pending bookings: %w", err)
	}

	return r.collectBookings(rows)
}
