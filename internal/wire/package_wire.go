package wire

import (
	"travel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePackage(r chi.Router, packageHandler *adaptor.PackageHandler, g guards) {
	r.Route("/api/packages", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", packageHandler.ListPackages)   // GET /api/packages?from=&to=&date=&sort=&page=
		r.Get("/{id}", packageHandler.GetPackage) // GET /api/packages/{id}

		// ==================== ADMIN ROUTES ====================
		// Require both authentication AND admin role
		r.Group(func(r chi.Router) {
			r.Use(g.authenticate)
			r.Use(g.admin)

			r.Post("/", packageHandler.CreatePackage)
			r.Put("/{id}", packageHandler.UpdatePackage)
			r.Delete("/{id}", packageHandler.DeletePackage)
		})
	})
}
