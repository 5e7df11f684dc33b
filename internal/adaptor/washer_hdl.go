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

type WasherHandler struct {
	service usecase.WasherService
	log     *zap.Logger
}

func NewWasherHandler(service usecase.WasherService, log *zap.Logger) *WasherHandler {
	return &WasherHandler{
		service: service,
		log:     log.With(zap.String("handler", "washer")),
	}
}

// ListWashers handles GET /api/washers (public)
func (h *WasherHandler) ListWashers(w http.ResponseWriter, r *http.Request) {
	req := paginationFromQuery(r)

	washers, total, err := h.service.ListWashers(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list washers")
		return
	}

	utils.ResponsePaginated(w, washers, req.Page, req.PageSize(), total)
}

// ListAvailableWashers handles GET /api/washers/available (public)
func (h *WasherHandler) ListAvailableWashers(w http.ResponseWriter, r *http.Request) {
	washers, err := h.service.ListAvailableWashers(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list available washers")
		return
	}

	utils.ResponseSuccess(w, "success", washers)
}

// GetWasher handles GET /api/washers/{id} (public)
func (h *WasherHandler) GetWasher(w http.ResponseWriter, r *http.Request) {
	washer, err := h.service.GetWasher(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get washer")
		return
	}

	utils.ResponseSuccess(w, "success", washer)
}

// UpdateProfile handles PUT /api/washers/me (washer only)
func (h *WasherHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateWasherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	washer, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update washer profile")
		return
	}

	utils.ResponseSuccess(w, "success", washer)
}
