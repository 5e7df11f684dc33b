package repository

import (
	"context"
	"fmt"

	"carwash-booking/internal/data/entity"
	"carwash-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type WasherRepository interface {
	Create(ctx context.Context, washer *entity.Washer) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Washer, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Washer, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Washer, error)
	CountAll(ctx context.Context) (int64, error)
	FindAvailable(ctx context.Context) ([]*entity.Washer, error)
	Update(ctx context.Context, washer *entity.Washer) error
	IncrementTotalJobs(ctx context.Context, id uuid.UUID) error
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error
}

type washerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWasherRepository(db database.PgxIface, log *zap.Logger) WasherRepository {
	return &washerRepository{
		db:  db,
		log: log.With(zap.String("repository", "washer")),
	}
}

const washerColumns = `id, user_id, rating, total_jobs, is_available, latitude, longitude,
		services, hourly_rate, created_at, updated_at`

func scanWasher(row pgx.Row) (*entity.Washer, error) {
	var washer entity.Washer
	err := row.Scan(
		&washer.ID,
		&washer.UserID,
		&washer.Rating,
		&washer.TotalJobs,
		&washer.IsAvailable,
		&washer.Latitude,
		&washer.Longitude,
		&washer.Services,
		&washer.HourlyRate,
		&washer.CreatedAt,
		&washer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &washer, nil
}

func (r *washerRepository) collectWashers(rows pgx.Rows) ([]*entity.Washer, error) {
	defer rows.Close()

	var washers []*entity.Washer
	for rows.Next() {
		washer, err := scanWasher(rows)
		if err != nil {
			r.log.Error("Failed to scan washer row", zap.Error(err))
			return nil, fmt.Errorf("scan washer row: %w", err)
		}
		washers = append(washers, washer)
	}

	return washers, rows.Err()
}

func (r *washerRepository) Create(ctx context.Context, washer *entity.Washer) error {
	query := `
		INSERT INTO washers (` + washerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		washer.ID,
		washer.UserID,
		washer.Rating,
		washer.TotalJobs,
		washer.IsAvailable,
		washer.Latitude,
		washer.Longitude,
		washer.Services,
		washer.HourlyRate,
		washer.CreatedAt,
		washer.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create washer profile",
			zap.Error(err),
			zap.String("user_id", washer.UserID.String()),
		)
		return fmt.Errorf("create washer profile: %w", err)
	}

	return nil
}

func (r *washerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Washer, error) {
	query := `SELECT ` + washerColumns + ` FROM washers WHERE id = $1`

	washer, err := scanWasher(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find washer by ID",
			zap.Error(err),
			zap.String("washer_id", id.String()),
		)
		return nil, fmt.Errorf("find washer by ID %s: %w", id.String(), err)
	}

	return washer, nil
}

func (r *washerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Washer, error) {
	query := `SELECT ` + washerColumns + ` FROM washers WHERE user_id = $1`

	washer, err := scanWasher(r.db.QueryRow(ctx, query, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find washer by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find washer by user ID %s: %w", userID.String(), err)
	}

	return washer, nil
}

func (r *washerRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Washer, error) {
	query := `
		SELECT ` + washerColumns + `
		FROM washers
		ORDER BY rating DESC, total_jobs DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list washers", zap.Error(err))
		return nil, fmt.Errorf("list washers: %w", err)
	}

	return r.collectWashers(rows)
}

func (r *washerRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM washers`).Scan(&count); err != nil {
		r.log.Error("Failed to count washers", zap.Error(err))
		return 0, fmt.Errorf("count washers: %w", err)
	}
	return count, nil
}

func (r *washerRepository) FindAvailable(ctx context.Context) ([]*entity.Washer, error) {
	query := `
		SELECT ` + washerColumns + `
		FROM washers
		WHERE is_available = true
		ORDER BY rating DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list available washers", zap.Error(err))
		return nil, fmt.Errorf("list available washers: %w", err)
	}

	return r.collectWashers(rows)
}

func (r *washerRepository) Update(ctx context.Context, washer *entity.Washer) error {
	query := `
		UPDATE washers
		SET is_available = $2, latitude = $3, longitude = $4, services = $5,
		    hourly_rate = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		washer.ID,
		washer.IsAvailable,
		washer.Latitude,
		washer.Longitude,
		washer.Services,
		washer.HourlyRate,
		washer.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update washer",
			zap.Error(err),
			zap.String("washer_id", washer.ID.String()),
		)
		return fmt.Errorf("update washer %s: %w", washer.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("washer %s not found", washer.ID.String())
	}

	return nil
}

func (r *washerRepository) IncrementTotalJobs(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE washers SET total_jobs = total_jobs + 1, updated_at = NOW() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		r.log.Error("Failed to increment washer total jobs",
			zap.Error(err),
			zap.String("washer_id", id.String()),
		)
		return fmt.Errorf("increment total jobs for washer %s: %w", id.String(), err)
	}

	return nil
}

func (r *washerRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error {
	query := `UPDATE washers SET rating = $2, updated_at = NOW() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, rating); err != nil {
		r.log.Error("Failed to update washer rating",
			zap.Error(err),
			zap.String("washer_id", id.String()),
		)
		return fmt.Errorf("update rating for washer %s: %w", id.String(), err)
	}

	return nil
}
