package wire

import (
	"travel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, g guards) {
	// ==================== PROTECTED ROUTES (require auth, role user) ====================
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(g.authenticate)
		r.Use(g.user)

		r.Get("/", bookingHandler.GetUserBookings)           // GET /api/bookings - own bookings
		r.Post("/", bookingHandler.CreateBooking)            // POST /api/bookings
		r.Post("/{id}/cancel", bookingHandler.CancelBooking) // POST /api/bookings/{id}/cancel
	})
}
