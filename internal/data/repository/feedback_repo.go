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

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.Feedback) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Feedback, error)
	FindByWasherID(ctx context.Context, washerID uuid.UUID) ([]*entity.Feedback, error)
	AverageRatingByWasherID(ctx context.Context, washerID uuid.UUID) (float64, error)
}

type feedbackRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFeedbackRepository(db database.PgxIface, log *zap.Logger) FeedbackRepository {
	return &feedbackRepository{
		db:  db,
		log: log.With(zap.String("repository", "feedback")),
	}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *entity.Feedback) error {
	query := `
		INSERT INTO feedback (id, booking_id, user_id, washer_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		feedback.ID,
		feedback.BookingID,
		feedback.UserID,
		feedback.WasherID,
		feedback.Rating,
		feedback.Comment,
		feedback.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create feedback",
			zap.Error(err),
			zap.String("booking_id", feedback.BookingID.String()),
		)
		return fmt.Errorf("create feedback for booking %s: %w", feedback.BookingID.String(), err)
	}

	return nil
}

func (r *feedbackRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Feedback, error) {
	query := `
		SELECT id, booking_id, user_id, washer_id, rating, comment, created_at
		FROM feedback
		WHERE booking_id = $1
	`

	var f entity.Feedback
	err := r.db.QueryRow(ctx, query, bookingID).Scan(
		&f.ID, &f.BookingID, &f.UserID, &f.WasherID, &f.Rating, &f.Comment, &f.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find feedback by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find feedback by booking ID %s: %w", bookingID.String(), err)
	}

	return &f, nil
}

func (r *feedbackRepository) FindByWasherID(ctx context.Context, washerID uuid.UUID) ([]*entity.Feedback, error) {
	query := `
		SELECT id, booking_id, user_id, washer_id, rating, comment, created_at
		FROM feedback
		WHERE washer_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, washerID)
	if err != nil {
		r.log.Error("Failed to find feedback by washer ID",
			zap.Error(err),
			zap.String("washer_id", washerID.String()),
		)
		return nil, fmt.Errorf("find feedback by washer ID %s: %w", washerID.String(), err)
	}
	defer rows.Close()

	var feedbacks []*entity.Feedback
	for rows.Next() {
		var f entity.Feedback
		err := rows.Scan(&f.ID, &f.BookingID, &f.UserID, &f.WasherID, &f.Rating, &f.Comment, &f.CreatedAt)
		if err != nil {
			r.log.Error("Failed to scan feedback row", zap.Error(err))
			return nil, fmt.Errorf("scan feedback row: %w", err)
		}
		feedbacks = append(feedbacks, &f)
	}

	return feedbacks, rows.Err()
}

func (r *feedbackRepository) AverageRatingByWasherID(ctx context.Context, washerID uuid.UUID) (float64, error) {
	var avg float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0) FROM feedback WHERE washer_id = $1`, washerID,
	).Scan(&avg)
	if err != nil {
		r.log.Error("Failed to compute washer average rating",
			zap.Error(err),
			zap.String("washer_id", washerID.String()),
		)
		return 0, fmt.Errorf("average rating for washer %s: %w", washerID.String(), err)
	}
	return avg, nil
}
