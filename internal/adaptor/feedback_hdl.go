package adaptor

import (
	"encoding/json"
	"net/http"

	"carwash-booking/internal/dto/request"
	"carwash-booking/internal/usecase"
	"carwash-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FeedbackHandler struct {
	service usecase.FeedbackService
	log     *zap.Logger
}

func NewFeedbackHandler(service usecase.FeedbackService, log *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		log:     log.With(zap.String("handler", "feedback")),
	}
}

// CreateFeedback handles POST /api/feedback (protected)
func (h *FeedbackHandler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	feedback, err := h.service.CreateFeedback(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create feedback")
		return
	}

	utils.ResponseCreated(w, "success", feedback)
}

// ListWasherFeedback handles GET /api/washers/{id}/feedback (public)
func (h *FeedbackHandler) ListWasherFeedback(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.service.ListWasherFeedback(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "list washer feedback")
		return
	}

	utils.ResponseSuccess(w, "success", feedback)
}
