package usecase

import (
	"context"
	"fmt"
	"time"

	"carwash-booking/internal/data/entity"
	"carwash-booking/internal/data/repository"
	"carwash-booking/internal/dto/request"
	"carwash-booking/internal/dto/response"
	"carwash-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FeedbackService interface {
	CreateFeedback(ctx context.Context, userID uuid.UUID, req *request.CreateFeedbackRequest) (*response.FeedbackResponse, error)
	ListWasherFeedback(ctx context.Context, washerID string) ([]response.FeedbackResponse, error)
}

type feedbackService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewFeedbackService(repo *repository.Repository, log *zap.Logger) FeedbackService {
	return &feedbackService{
		repo: repo,
		log:  log.With(zap.String("service", "feedback")),
	}
}

func (s *feedbackService) CreateFeedback(ctx context.Context, userID uuid.UUID, req *request.CreateFeedbackRequest) (*response.FeedbackResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", req.BookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("load booking %s: %w", req.BookingID, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", req.BookingID, ErrBookingNotFound)
	}

	// Only the customer rates, and only a finished job.
	if booking.UserID != userID {
		return nil, fmt.Errorf("booking %s: %w", req.BookingID, ErrAccessDenied)
	}
	if booking.Status != entity.BookingStatusCompleted || booking.WasherID == nil {
		return nil, fmt.Errorf("booking %s not completed: %w", req.BookingID, ErrFeedbackNotAllowed)
	}

	existing, err := s.repo.Feedback.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("check feedback for booking %s: %w", req.BookingID, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("booking %s: %w", req.BookingID, ErrFeedbackExists)
	}

	feedback := &entity.Feedback{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		BookingID: bookingID,
		UserID:    userID,
		WasherID:  *booking.WasherID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := s.repo.Feedback.Create(ctx, feedback); err != nil {
		s.log.Error("Failed to create feedback",
			zap.Error(err), zap.String("booking_id", req.BookingID))
		return nil, fmt.Errorf("create feedback: %w", err)
	}

	// Keep the denormalized rating on the washer profile current.
	if avg, err := s.repo.Feedback.AverageRatingByWasherID(ctx, feedback.WasherID); err != nil {
		s.log.Warn("Failed to recompute washer rating",
			zap.Error(err), zap.String("washer_id", feedback.WasherID.String()))
	} else if err := s.repo.Washer.UpdateRating(ctx, feedback.WasherID, avg); err != nil {
		s.log.Warn("Failed to store washer rating",
			zap.Error(err), zap.String("washer_id", feedback.WasherID.String()))
	}

	s.log.Info("Feedback created",
		zap.String("booking_id", req.BookingID),
		zap.String("washer_id", feedback.WasherID.String()),
		zap.Int("rating", req.Rating),
	)

	resp := response.FeedbackToResponse(feedback)
	return &resp, nil
}

func (s *feedbackService) ListWasherFeedback(ctx context.Context, washerID string) ([]response.FeedbackResponse, error) {
	id, err := uuid.Parse(washerID)
	if err != nil {
		return nil, fmt.Errorf("invalid washer ID format %s: %w", washerID, err)
	}

	feedbacks, err := s.repo.Feedback.FindByWasherID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list feedback for washer %s: %w", washerID, err)
	}

	responses := make([]response.FeedbackResponse, len(feedbacks))
	for i, f := range feedbacks {
		responses[i] = response.FeedbackToResponse(f)
	}
	return responses, nil
}
