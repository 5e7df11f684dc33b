package usecase

import (
	"context"
	"fmt"
	"time"

	"carwash-booking/internal/data/entity"
	"carwash-booking/internal/data/repository"
	"carwash-booking/internal/dto/request"
	"carwash-booking/internal/dto/response"
	"carwash-booking/internal/events"
	"carwash-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Actor identifies who is requesting a transition; authorization
// depends on both identity and role.
type Actor struct {
	UserID uuid.UUID
	Role   entity.UserRole
}

type BookingService interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, bookingID string, actor Actor) (*response.BookingResponse, error)
	ListBookings(ctx context.Context, req *request.PaginatedRequest) ([]response.BookingResponse, int64, error)
	ListUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) ([]response.BookingResponse, int64, error)
	ListWasherBookings(ctx context.Context, washerID string, actor Actor, req *request.PaginatedRequest) ([]response.BookingResponse, int64, error)
	UpdateBookingStatus(ctx context.Context, bookingID, targetStatus string, actor Actor) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string, actor Actor) (*response.BookingResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	events   events.Publisher
	notifier NotificationService
	log      *zap.Logger
}

func NewBookingService(repo *repository.Repository, publisher events.Publisher, notifier NotificationService, log *zap.Logger) BookingService {
	return &bookingService{
		repo:     repo,
		events:   publisher,
		notifier: notifier,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		return nil, fmt.Errorf("invalid plan ID format %s: %w", req.PlanID, err)
	}

	scheduledDate, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduled date %s: %w", req.ScheduledDate, err)
	}

	// The plan is the price authority. A client-supplied amount would
	// not be trusted, so the request has no amount field at all.
	plan, err := s.repo.Plan.FindByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("load plan %s: %w", req.PlanID, err)
	}
	if plan == nil || !plan.IsActive {
		return nil, fmt.Errorf("plan %s: %w", req.PlanID, ErrPlanNotFound)
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:        userID,
		PlanID:        planID,
		Status:        entity.BookingStatusPending,
		ScheduledDate: scheduledDate,
		ScheduledTime: req.ScheduledTime,
		Address:       req.Location.Address,
		Latitude:      req.Location.Latitude,
		Longitude:     req.Location.Longitude,
		TotalAmount:   plan.Price,
		PaymentStatus: entity.PaymentStatusPending,
		Notes:         req.Notes,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("plan_id", req.PlanID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	payment := &entity.Payment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID: booking.ID,
		Amount:    plan.Price,
		Status:    entity.PaymentStatusPending,
		Method:    entity.PaymentMethodCard,
	}
	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		s.log.Warn("Failed to create payment record for booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		// Booking stands; the payment row can be recreated by the payment flow.
	}

	s.publishEvent(ctx, events.KeyBookingCreated, map[string]any{
		"booking_id":   booking.ID.String(),
		"user_id":      userID.String(),
		"plan_id":      planID.String(),
		"total_amount": booking.TotalAmount,
	})

	s.notifier.Notify(ctx, userID, "Booking created",
		fmt.Sprintf("Your %s wash is scheduled for %s at %s.", plan.Name, req.ScheduledDate, req.ScheduledTime),
		entity.NotificationSuccess)

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("plan_id", planID.String()),
		zap.Float64("total_amount", booking.TotalAmount),
	)

	resp := response.BookingToResponse(booking, plan)
	return &resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string, actor Actor) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !s.canView(ctx, booking, actor) {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrAccessDenied)
	}

	plan, _ := s.repo.Plan.FindByID(ctx, booking.PlanID)
	resp := response.BookingToResponse(booking, plan)
	return &resp, nil
}

func (s *bookingService) ListBookings(ctx context.Context, req *request.PaginatedRequest) ([]response.BookingResponse, int64, error) {
	bookings, err := s.repo.Booking.FindAll(ctx, req.PageSize(), req.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.CountAll(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	return s.toResponses(ctx, bookings), total, nil
}

func (s *bookingService) ListUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) ([]response.BookingResponse, int64, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, id, req.PageSize(), req.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings for user %s: %w", userID, err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, id)
	if err != nil {
		return nil, 0, fmt.Errorf("count bookings for user %s: %w", userID, err)
	}

	return s.toResponses(ctx, bookings), total, nil
}

func (s *bookingService) ListWasherBookings(ctx context.Context, washerID string, actor Actor, req *request.PaginatedRequest) ([]response.BookingResponse, int64, error) {
	id, err := uuid.Parse(washerID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid washer ID format %s: %w", washerID, err)
	}

	// A washer's history contains other customers' addresses; only the
	// washer themselves or an admin may read it.
	if actor.Role != entity.RoleAdmin {
		if actor.Role != entity.RoleWasher {
			return nil, 0, fmt.Errorf("washer %s bookings: %w", washerID, ErrAccessDenied)
		}
		washer, err := s.repo.Washer.FindByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, 0, fmt.Errorf("load washer profile: %w", err)
		}
		if washer == nil || washer.ID != id {
			return nil, 0, fmt.Errorf("washer %s bookings: %w", washerID, ErrAccessDenied)
		}
	}

	bookings, err := s.repo.Booking.FindByWasherID(ctx, id, req.PageSize(), req.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings for washer %s: %w", washerID, err)
	}

	total, err := s.repo.Booking.CountByWasherID(ctx, id)
	if err != nil {
		return nil, 0, fmt.Errorf("count bookings for washer %s: %w", washerID, err)
	}

	return s.toResponses(ctx, bookings), total, nil
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, bookingID, targetStatus string, actor Actor) (*response.BookingResponse, error) {
	target, err := entity.ParseBookingStatus(targetStatus)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", targetStatus, ErrInvalidTransition)
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// Reject before any write is dispatched.
	if !booking.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%s -> %s: %w", booking.Status, target, ErrInvalidTransition)
	}

	washerID, err := s.authorizeTransition(ctx, booking, target, actor)
	if err != nil {
		return nil, err
	}

	// Conditional update: the row must still be at the status we saw.
	// Losing the race is a Conflict, not an error in our state.
	applied, err := s.repo.Booking.UpdateStatusFrom(ctx, booking.ID, booking.Status, target, washerID)
	if err != nil {
		return nil, fmt.Errorf("apply transition for booking %s: %w", bookingID, err)
	}
	if !applied {
		// Distinguish a lost race from a row that vanished underneath us.
		if current, ferr := s.repo.Booking.FindByID(ctx, booking.ID); ferr == nil && current == nil {
			return nil, fmt.Errorf("booking %s: %w", bookingID, ErrBookingNotFound)
		}
		s.log.Warn("Booking transition lost race",
			zap.String("booking_id", bookingID),
			zap.String("from", string(booking.Status)),
			zap.String("to", string(target)),
		)
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrStatusConflict)
	}

	previous := booking.Status
	s.applySideEffects(ctx, booking, previous, target, washerID)

	updated, err := s.repo.Booking.FindByID(ctx, booking.ID)
	if err != nil || updated == nil {
		// The transition is already applied; fall back to the in-memory view.
		booking.Status = target
		booking.UpdatedAt = time.Now()
		updated = booking
	}

	s.publishEvent(ctx, events.KeyBookingStatusChanged, map[string]any{
		"booking_id": booking.ID.String(),
		"from":       string(previous),
		"to":         string(target),
		"actor_id":   actor.UserID.String(),
		"actor_role": string(actor.Role),
	})

	s.log.Info("Booking status updated",
		zap.String("booking_id", bookingID),
		zap.String("from", string(previous)),
		zap.String("to", string(target)),
		zap.String("actor_role", string(actor.Role)),
	)

	plan, _ := s.repo.Plan.FindByID(ctx, updated.PlanID)
	resp := response.BookingToResponse(updated, plan)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string, actor Actor) (*response.BookingResponse, error) {
	return s.UpdateBookingStatus(ctx, bookingID, string(entity.BookingStatusCancelled), actor)
}

// ==================== HELPERS ====================

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrBookingNotFound)
	}

	return booking, nil
}

func (s *bookingService) canView(ctx context.Context, booking *entity.Booking, actor Actor) bool {
	switch actor.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleUser:
		return booking.UserID == actor.UserID
	case entity.RoleWasher:
		if booking.WasherID == nil {
			return booking.Status == entity.BookingStatusPending
		}
		washer, err := s.repo.Washer.FindByUserID(ctx, actor.UserID)
		return err == nil && washer != nil && *booking.WasherID == washer.ID
	default:
		return false
	}
}

// authorizeTransition decides whether the actor may perform the edge and
// returns the washer profile to assign, if any. Assignment happens at
// accept and only when the booking has no washer yet.
func (s *bookingService) authorizeTransition(ctx context.Context, booking *entity.Booking, target entity.BookingStatus, actor Actor) (*uuid.UUID, error) {
	switch actor.Role {
	case entity.RoleAdmin:
		return nil, nil

	case entity.RoleUser:
		// Customers may only cancel their own bookings.
		if target != entity.BookingStatusCancelled || booking.UserID != actor.UserID {
			return nil, fmt.Errorf("booking %s: %w", booking.ID.String(), ErrAccessDenied)
		}
		return nil, nil

	case entity.RoleWasher:
		washer, err := s.repo.Washer.FindByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, fmt.Errorf("load washer profile: %w", err)
		}
		if washer == nil {
			return nil, fmt.Errorf("user %s: %w", actor.UserID.String(), ErrWasherNotFound)
		}

		switch target {
		case entity.BookingStatusConfirmed, entity.BookingStatusCancelled:
			// An already assigned booking belongs to its washer.
			if booking.WasherID != nil && *booking.WasherID != washer.ID {
				return nil, fmt.Errorf("booking %s: %w", booking.ID.String(), ErrAccessDenied)
			}
			// Only accepting claims an unassigned booking; declining one
			// leaves it unassigned.
			if target == entity.BookingStatusCancelled && booking.WasherID == nil {
				return nil, nil
			}
			id := washer.ID
			return &id, nil
		case entity.BookingStatusInProgress, entity.BookingStatusCompleted:
			if booking.WasherID == nil || *booking.WasherID != washer.ID {
				return nil, fmt.Errorf("booking %s: %w", booking.ID.String(), ErrAccessDenied)
			}
			return nil, nil
		default:
			return nil, fmt.Errorf("booking %s: %w", booking.ID.String(), ErrAccessDenied)
		}

	default:
		return nil, fmt.Errorf("booking %s: %w", booking.ID.String(), ErrAccessDenied)
	}
}

func (s *bookingService) applySideEffects(ctx context.Context, booking *entity.Booking, from, to entity.BookingStatus, assignedWasher *uuid.UUID) {
	switch to {
	case entity.BookingStatusConfirmed:
		s.notifier.Notify(ctx, booking.UserID, "Booking confirmed",
			"A washer has accepted your booking.", entity.NotificationSuccess)

	case entity.BookingStatusInProgress:
		s.notifier.Notify(ctx, booking.UserID, "Wash started",
			"Your washer has started the job.", entity.NotificationInfo)

	case entity.BookingStatusCompleted:
		washerID := booking.WasherID
		if washerID == nil {
			washerID = assignedWasher
		}
		if washerID != nil {
			if err := s.repo.Washer.IncrementTotalJobs(ctx, *washerID); err != nil {
				s.log.Warn("Failed to bump washer job count",
					zap.Error(err), zap.String("washer_id", washerID.String()))
			}
		}
		s.notifier.Notify(ctx, booking.UserID, "Wash completed",
			"Your wash is done. Leave feedback for your washer!", entity.NotificationSuccess)

	case entity.BookingStatusCancelled:
		// A paid booking that gets cancelled is refunded.
		if booking.PaymentStatus == entity.PaymentStatusCompleted {
			if err := s.repo.Booking.UpdatePaymentStatus(ctx, booking.ID, entity.PaymentStatusRefunded); err != nil {
				s.log.Warn("Failed to mark booking refunded",
					zap.Error(err), zap.String("booking_id", booking.ID.String()))
			}
			if err := s.repo.Payment.UpdateStatusByBookingID(ctx, booking.ID, entity.PaymentStatusRefunded); err != nil {
				s.log.Warn("Failed to mark payment refunded",
					zap.Error(err), zap.String("booking_id", booking.ID.String()))
			}
		}
		s.notifier.Notify(ctx, booking.UserID, "Booking cancelled",
			"Your booking has been cancelled.", entity.NotificationWarning)
	}
}

func (s *bookingService) publishEvent(ctx context.Context, key string, payload map[string]any) {
	if err := s.events.PublishJSON(ctx, key, payload); err != nil {
		s.log.Warn("Failed to publish booking event", zap.Error(err), zap.String("key", key))
	}
}

func (s *bookingService) toResponses(ctx context.Context, bookings []*entity.Booking) []response.BookingResponse {
	// Resolve each distinct plan once per page.
	plans := make(map[uuid.UUID]*entity.Plan)
	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		plan, ok := plans[booking.PlanID]
		if !ok {
			plan, _ = s.repo.Plan.FindByID(ctx, booking.PlanID)
			plans[booking.PlanID] = plan
		}
		responses[i] = response.BookingToResponse(booking, plan)
	}
	return responses
}
