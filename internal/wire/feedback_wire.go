package wire

import (
	"carwash-booking/internal/adaptor"
	"carwash-booking/internal/data/repository"
	"carwash-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireFeedback(
	r chi.Router,
	feedbackHandler *adaptor.FeedbackHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/api/feedback", feedbackHandler.CreateFeedback)
	})
}
