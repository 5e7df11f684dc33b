package wire

import (
	"carwash-booking/internal/adaptor"
	"carwash-booking/internal/data/entity"
	"carwash-booking/internal/data/repository"
	"carwash-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireWasher(
	r chi.Router,
	washerHandler *adaptor.WasherHandler,
	statsHandler *adaptor.StatsHandler,
	feedbackHandler *adaptor.FeedbackHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Fixed paths first so chi does not swallow them as {id}.
	r.Get("/api/washers", washerHandler.ListWashers)
	r.Get("/api/washers/available", washerHandler.ListAvailableWashers)
	r.Get("/api/washers/{id}", washerHandler.GetWasher)
	r.Get("/api/washers/{id}/feedback", feedbackHandler.ListWasherFeedback)

	// ==================== WASHER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireRole(log, entity.RoleWasher))

		r.Put("/api/washers/me", washerHandler.UpdateProfile)
		r.Get("/api/washers/me/stats", statsHandler.WasherStats)
	})
}
