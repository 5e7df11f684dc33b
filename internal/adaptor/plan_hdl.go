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

type PlanHandler struct {
	service usecase.PlanService
	log     *zap.Logger
}

func NewPlanHandler(service usecase.PlanService, log *zap.Logger) *PlanHandler {
	return &PlanHandler{
		service: service,
		log:     log.With(zap.String("handler", "plan")),
	}
}

// ListPlans handles GET /api/plans (public)
func (h *PlanHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.ListPlans(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list plans")
		return
	}

	utils.ResponseSuccess(w, "success", plans)
}

// GetPlan handles GET /api/plans/{id} (public)
func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.service.GetPlan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get plan")
		return
	}

	utils.ResponseSuccess(w, "success", plan)
}

// ==================== ADMIN METHODS ====================

// CreatePlan handles POST /api/admin/plans (admin only)
func (h *PlanHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	plan, err := h.service.CreatePlan(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create plan")
		return
	}

	utils.ResponseCreated(w, "success", plan)
}

// UpdatePlan handles PUT /api/admin/plans/{id} (admin only)
func (h *PlanHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	plan, err := h.service.UpdatePlan(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update plan")
		return
	}

	utils.ResponseSuccess(w, "success", plan)
}

// DeactivatePlan handles DELETE /api/admin/plans/{id} (admin only)
func (h *PlanHandler) DeactivatePlan(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeactivatePlan(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "deactivate plan")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
