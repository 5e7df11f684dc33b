package wire

import (
	"net/http"

	"carwash-booking/internal/adaptor"
	"carwash-booking/internal/data/repository"
	"carwash-booking/internal/events"
	"carwash-booking/internal/usecase"
	"carwash-booking/pkg/middleware"
	"carwash-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type App struct {
	Router  chi.Router
	Service *usecase.Service
}

// Wiring assembles services, handlers and routes.
func Wiring(repo *repository.Repository, config *utils.Config, publisher events.Publisher, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, publisher, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, repo, logger)
	wireUser(r, handler.User, handler.Stats, repo, logger)
	wireWasher(r, handler.Washer, handler.Stats, handler.Feedback, repo, logger)
	wirePlan(r, handler.Plan, repo, logger)
	wireBooking(r, handler.Booking, handler.Payment, repo, logger)
	wireNotification(r, handler.Notification, repo, logger)
	wireFeedback(r, handler.Feedback, repo, logger)
	wireAdmin(r, handler, repo, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if config.Tracing.Enabled {
		return traceRouter(r, config.App.Name)
	}
	return r
}

// traceRouter wraps the mux so every request gets a server span.
func traceRouter(r chi.Router, serviceName string) chi.Router {
	wrapped := chi.NewRouter()
	wrapped.Mount("/", otelhttp.NewHandler(r, serviceName))
	return wrapped
}
