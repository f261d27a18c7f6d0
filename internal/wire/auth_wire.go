package wire

import (
	"travel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, g guards) {
	r.Route("/api/auth", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		// Public routes (tanpa auth middleware), rate limited per IP
		r.Group(func(r chi.Router) {
			r.Use(g.rateLimit)

			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/admin/login", authHandler.AdminLogin)
			r.Post("/google", authHandler.GoogleLogin)
		})

		// ==================== PROTECTED ROUTES ====================
		r.With(g.authenticate).Get("/check-auth", authHandler.CheckAuth)
	})
}
