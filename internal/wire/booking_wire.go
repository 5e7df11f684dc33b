package wire

import (
	"carwash-booking/internal/adaptor"
	"carwash-booking/internal/data/repository"
	"carwash-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	paymentHandler *adaptor.PaymentHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/bookings - Create new booking
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings/{id} - Booking details (owner, assigned washer, admin)
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)

		// PUT /api/bookings/{id}/status - Drive the status machine
		r.Put("/api/bookings/{id}/status", bookingHandler.UpdateBookingStatus)

		// PUT /api/bookings/{id}/cancel - Cancel shortcut
		r.Put("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)

		// GET /api/users/{id}/bookings - Customer booking history
		r.Get("/api/users/{id}/bookings", bookingHandler.ListUserBookings)

		// GET /api/washers/{id}/bookings - Washer job list
		r.Get("/api/washers/{id}/bookings", bookingHandler.ListWasherBookings)

		// POST /api/bookings/{id}/pay - Settle the pending payment
		r.Post("/api/bookings/{id}/pay", paymentHandler.ProcessPayment)

		// GET /api/bookings/{id}/payment - Payment details
		r.Get("/api/bookings/{id}/payment", paymentHandler.GetBookingPayment)
	})
}
