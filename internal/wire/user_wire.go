package wire

import (
	"travel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser configures profile routes; any authenticated role may manage its own profile
func wireUser(r chi.Router, userHandler *adaptor.UserHandler, g guards) {
	r.Route("/api/users", func(r chi.Router) {
		r.Use(g.authenticate)

		r.Get("/profile", userHandler.GetProfile)
		r.Get("/me", userHandler.GetProfile)
		r.Put("/profile", userHandler.UpdateProfile)
		r.Post("/profile-picture", userHandler.UploadProfilePicture)
	})
}
