package repository

import (
	"context"
	"fmt"

	"carwash-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminStats struct {
	TotalUsers    int64
	TotalWashers  int64
	TotalBookings int64
	TotalRevenue  float64
}

type UserStats struct {
	TotalBookings     int64
	CompletedBookings int64
	TotalSpent        float64
	UpcomingBookings  int64
}

type WasherStats struct {
	TotalJobs     int64
	CompletedJobs int64
	TotalEarnings float64
	AverageRating float64
}

type StatsRepository interface {
	AdminStats(ctx context.Context) (*AdminStats, error)
	UserStats(ctx context.Context, userID uuid.UUID) (*UserStats, error)
	WasherStats(ctx context.Context, washerID uuid.UUID) (*WasherStats, error)
}

type statsRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewStatsRepository(db database.PgxIface, log *zap.Logger) StatsRepository {
	return &statsRepository{
		db:  db,
		log: log.With(zap.String("repository", "stats")),
	}
}

func (r *statsRepository) AdminStats(ctx context.Context) (*AdminStats, error) {
	// Revenue counts only completed, paid bookings.
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = 'user'),
			(SELECT COUNT(*) FROM washers),
			(SELECT COUNT(*) FROM bookings),
			(SELECT COALESCE(SUM(total_amount), 0) FROM bookings
				WHERE status = 'completed' AND payment_status = 'completed')
	`

	var stats AdminStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalUsers,
		&stats.TotalWashers,
		&stats.TotalBookings,
		&stats.TotalRevenue,
	)
	if err != nil {
		r.log.Error("Failed to compute admin stats", zap.Error(err))
		return nil, fmt.Errorf("compute admin stats: %w", err)
	}

	return &stats, nil
}

func (r *statsRepository) UserStats(ctx context.Context, userID uuid.UUID) (*UserStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COALESCE(SUM(total_amount) FILTER (WHERE status = 'completed' AND payment_status = 'completed'), 0),
			COUNT(*) FILTER (WHERE status IN ('pending', 'confirmed')
				AND scheduled_date + scheduled_time::time > NOW())
		FROM bookings
		WHERE user_id = $1
	`

	var stats UserStats
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&stats.TotalBookings,
		&stats.CompletedBookings,
		&stats.TotalSpent,
		&stats.UpcomingBookings,
	)
	if err != nil {
		r.log.Error("Failed to compute user stats",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("compute stats for user %s: %w", userID.String(), err)
	}

	return &stats, nil
}

func (r *statsRepository) WasherStats(ctx context.Context, washerID uuid.UUID) (*WasherStats, error) {
	query := `
		SELECT
			COUNT(b.*),
			COUNT(b.*) FILTER (WHERE b.status = 'completed'),
			COALESCE(SUM(b.total_amount) FILTER (WHERE b.status = 'completed' AND b.payment_status = 'completed'), 0),
			(SELECT COALESCE(AVG(rating), 0) FROM feedback WHERE washer_id = $1)
		FROM bookings b
		WHERE b.washer_id = $1
	`

	var stats WasherStats
	err := r.db.QueryRow(ctx, query, washerID).Scan(
		&stats.TotalJobs,
		&stats.CompletedJobs,
		&stats.TotalEarnings,
		&stats.AverageRating,
	)
	if err != nil {
		r.log.Error("Failed to compute washer stats",
			zap.Error(err),
			zap.String("washer_id", washerID.String()),
		)
		return nil, fmt.Errorf("compute stats for washer %s: %w", washerID.String(), err)
	}

	return &stats, nil
}
