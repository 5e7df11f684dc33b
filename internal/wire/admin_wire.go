package wire

import (
	"carwash-booking/internal/adaptor"
	"carwash-booking/internal/data/repository"
	"carwash-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	handler *adaptor.Handler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Get("/users", handler.User.ListUsers)
		r.Get("/users/{id}", handler.User.GetUserByID)
		r.Delete("/users/{id}", handler.User.DeactivateUser)

		r.Post("/plans", handler.Plan.CreatePlan)
		r.Put("/plans/{id}", handler.Plan.UpdatePlan)
		r.Delete("/plans/{id}", handler.Plan.DeactivatePlan)

		r.Get("/payments", handler.Payment.ListPayments)
		r.Get("/stats", handler.Stats.AdminStats)
	})

	// All bookings, admin-wide view.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Get("/api/bookings", handler.Booking.ListBookings)
	})
}
