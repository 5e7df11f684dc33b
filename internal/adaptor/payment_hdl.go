package adaptor

import (
	"encoding/json"
	"net/http"

	"carwash-booking/internal/data/entity"
	"carwash-booking/internal/usecase"
	"carwash-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

type processPaymentBody struct {
	Method string `json:"method" validate:"required,oneof=card cash digital_wallet"`
}

// ProcessPayment handles POST /api/bookings/{id}/pay (protected)
func (h *PaymentHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var body processPaymentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(body); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	payment, err := h.service.ProcessPayment(r.Context(), chi.URLParam(r, "id"), entity.PaymentMethod(body.Method), actor)
	if err != nil {
		handleServiceError(w, h.log, err, "process payment")
		return
	}

	utils.ResponseSuccess(w, "success", payment)
}

// GetBookingPayment handles GET /api/bookings/{id}/payment (protected)
func (h *PaymentHandler) GetBookingPayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	payment, err := h.service.GetBookingPayment(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking payment")
		return
	}

	utils.ResponseSuccess(w, "success", payment)
}

// ListPayments handles GET /api/admin/payments (admin only)
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	req := paginationFromQuery(r)

	payments, total, err := h.service.ListPayments(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list payments")
		return
	}

	utils.ResponsePaginated(w, payments, req.Page, req.PageSize(), total)
}
