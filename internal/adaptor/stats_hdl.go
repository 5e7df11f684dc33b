package adaptor

import (
	"net/http"

	"carwash-booking/internal/usecase"
	"carwash-booking/pkg/utils"

	"go.uber.org/zap"
)

type StatsHandler struct {
	service usecase.StatsService
	log     *zap.Logger
}

func NewStatsHandler(service usecase.StatsService, log *zap.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		log:     log.With(zap.String("handler", "stats")),
	}
}

// AdminStats handles GET /api/admin/stats (admin only)
func (h *StatsHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.AdminStats(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "admin stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// UserStats handles GET /api/users/me/stats (protected)
func (h *StatsHandler) UserStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	stats, err := h.service.UserStats(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "user stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// WasherStats handles GET /api/washers/me/stats (washer only)
func (h *StatsHandler) WasherStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	stats, err := h.service.WasherStats(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "washer stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}
