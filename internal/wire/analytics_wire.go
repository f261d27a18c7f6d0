package wire

import (
	"travel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAnalytics(r chi.Router, analyticsHandler *adaptor.AnalyticsHandler, g guards) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/analytics", func(r chi.Router) {
		r.Use(g.authenticate)
		r.Use(g.admin)

		r.Get("/users-bookings", analyticsHandler.UsersWithBookings)
		r.Get("/package-status", analyticsHandler.PackageStatus)
		r.Get("/booking-count", analyticsHandler.BookingCount)
	})
}
