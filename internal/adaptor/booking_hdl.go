package adaptor

import (
	"encoding/json"
	"net/http"

	"carwash-booking/internal/data/entity"
	"carwash-booking/internal/dto/request"
	"carwash-booking/internal/usecase"
	"carwash-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// GetBooking handles GET /api/bookings/{id} (protected)
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	booking, err := h.service.GetBooking(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// ListBookings handles GET /api/bookings (admin only)
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	req := paginationFromQuery(r)

	bookings, total, err := h.service.ListBookings(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list bookings")
		return
	}

	utils.ResponsePaginated(w, bookings, req.Page, req.PageSize(), total)
}

// ListUserBookings handles GET /api/users/{id}/bookings (protected)
func (h *BookingHandler) ListUserBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	targetID := chi.URLParam(r, "id")
	if actor.Role != entity.RoleAdmin && targetID != actor.UserID.String() {
		utils.ResponseForbidden(w, "You can only list your own bookings")
		return
	}

	req := paginationFromQuery(r)

	bookings, total, err := h.service.ListUserBookings(r.Context(), targetID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "list user bookings")
		return
	}

	utils.ResponsePaginated(w, bookings, req.Page, req.PageSize(), total)
}

// ListWasherBookings handles GET /api/washers/{id}/bookings (protected)
func (h *BookingHandler) ListWasherBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	req := paginationFromQuery(r)

	bookings, total, err := h.service.ListWasherBookings(r.Context(), chi.URLParam(r, "id"), actor, req)
	if err != nil {
		handleServiceError(w, h.log, err, "list washer bookings")
		return
	}

	utils.ResponsePaginated(w, bookings, req.Page, req.PageSize(), total)
}

// UpdateBookingStatus handles PUT /api/bookings/{id}/status (protected)
func (h *BookingHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.UpdateBookingStatus(r.Context(), chi.URLParam(r, "id"), req.Status, actor)
	if err != nil {
		handleServiceError(w, h.log, err, "update booking status")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// CancelBooking handles PUT /api/bookings/{id}/cancel (protected)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	booking, err := h.service.CancelBooking(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// ==================== SHARED HELPERS ====================

func actorFromContext(r *http.Request) (usecase.Actor, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return usecase.Actor{}, false
	}
	role, ok := utils.GetRoleFromContext(r.Context())
	if !ok {
		return usecase.Actor{}, false
	}
	return usecase.Actor{UserID: userID, Role: entity.UserRole(role)}, true
}

func paginationFromQuery(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:  utils.ParseInt(query.Get("page"), 1),
		Limit: utils.ParseInt(query.Get("limit"), 10),
	}
}
