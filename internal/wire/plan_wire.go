package wire

import (
	"carwash-booking/internal/adaptor"
	"carwash-booking/internal/data/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePlan(
	r chi.Router,
	planHandler *adaptor.PlanHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Plans are browsable without an account.
	r.Get("/api/plans", planHandler.ListPlans)
	r.Get("/api/plans/{id}", planHandler.GetPlan)
}
