package usecase

import (
	"context"
	"fmt"
	"time"

	"carwash-booking/internal/data/entity"
	"carwash-booking/internal/data/repository"
	"carwash-booking/internal/dto/request"
	"carwash-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentService interface {
	// ProcessPayment settles the pending payment of a booking. Only the
	// booking owner may pay, and only while the payment is pending.
	ProcessPayment(ctx context.Context, bookingID string, method entity.PaymentMethod, actor Actor) (*response.PaymentResponse, error)
	GetBookingPayment(ctx context.Context, bookingID string, actor Actor) (*response.PaymentResponse, error)
	ListPayments(ctx context.Context, req *request.PaginatedRequest) ([]response.PaymentResponse, int64, error)
}

type paymentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPaymentService(repo *repository.Repository, log *zap.Logger) PaymentService {
	return &paymentService{
		repo: repo,
		log:  log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) ProcessPayment(ctx context.Context, bookingID string, method entity.PaymentMethod, actor Actor) (*response.PaymentResponse, error) {
	booking, payment, err := s.loadBookingPayment(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if actor.Role != entity.RoleAdmin && booking.UserID != actor.UserID {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrAccessDenied)
	}
	if booking.Status == entity.BookingStatusCancelled {
		return nil, fmt.Errorf("booking %s is cancelled: %w", bookingID, ErrStatusConflict)
	}
	if payment.Status != entity.PaymentStatusPending {
		return nil, fmt.Errorf("payment for booking %s is %s: %w", bookingID, payment.Status, ErrStatusConflict)
	}

	switch method {
	case entity.PaymentMethodCard, entity.PaymentMethodCash, entity.PaymentMethodDigitalWallet:
	default:
		return nil, fmt.Errorf("unsupported payment method %s", method)
	}

	txID := fmt.Sprintf("txn_%d_%s", time.Now().Unix(), payment.ID.String()[:8])

	if err := s.repo.Payment.UpdateStatus(ctx, payment.ID, entity.PaymentStatusCompleted); err != nil {
		return nil, fmt.Errorf("settle payment for booking %s: %w", bookingID, err)
	}
	if err := s.repo.Booking.UpdatePaymentStatus(ctx, booking.ID, entity.PaymentStatusCompleted); err != nil {
		s.log.Warn("Failed to mirror payment status on booking",
			zap.Error(err), zap.String("booking_id", bookingID))
	}

	payment.Status = entity.PaymentStatusCompleted
	payment.Method = method
	payment.TransactionID = &txID
	payment.UpdatedAt = time.Now()

	s.log.Info("Payment completed",
		zap.String("booking_id", bookingID),
		zap.String("payment_id", payment.ID.String()),
		zap.Float64("amount", payment.Amount),
		zap.String("method", string(method)),
	)

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) GetBookingPayment(ctx context.Context, bookingID string, actor Actor) (*response.PaymentResponse, error) {
	booking, payment, err := s.loadBookingPayment(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if actor.Role != entity.RoleAdmin && booking.UserID != actor.UserID {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrAccessDenied)
	}

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) ListPayments(ctx context.Context, req *request.PaginatedRequest) ([]response.PaymentResponse, int64, error) {
	payments, err := s.repo.Payment.FindAll(ctx, req.PageSize(), req.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}

	total, err := s.repo.Payment.CountAll(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}

	responses := make([]response.PaymentResponse, len(payments))
	for i, payment := range payments {
		responses[i] = response.PaymentToResponse(payment)
	}
	return responses, total, nil
}

func (s *paymentService) loadBookingPayment(ctx context.Context, bookingID string) (*entity.Booking, *entity.Payment, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("load booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, nil, fmt.Errorf("booking %s: %w", bookingID, ErrBookingNotFound)
	}

	payment, err := s.repo.Payment.FindByBookingID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("load payment for booking %s: %w", bookingID, err)
	}
	if payment == nil {
		return nil, nil, fmt.Errorf("payment for booking %s: %w", bookingID, ErrPaymentNotFound)
	}

	return booking, payment, nil
}
