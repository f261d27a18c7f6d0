// internal/wire/wire.go
package wire

import (
	"context"
	"net/http"
	"strings"
	"time"

	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/metrics"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/storage"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router *chi.Mux
}

// guards are the per-route middleware stacks shared by the wireX functions.
type guards struct {
	authenticate func(http.Handler) http.Handler
	admin        func(http.Handler) http.Handler
	user         func(http.Handler) http.Handler
	rateLimit    func(http.Handler) http.Handler
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, deps usecase.Dependencies, config *utils.Config, logger *zap.Logger) *App {
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}

	// Initialize services dan handlers
	service := usecase.NewService(repo, deps, config, logger)
	handler := adaptor.NewHandler(service, config, logger)

	limiter := middleware.NewRateLimiter(config.RateLimit.PerSecond, config.RateLimit.Burst)
	g := guards{
		authenticate: middleware.Authenticate(deps.Tokens, repo.User, logger),
		admin:        middleware.RequireRole(entity.RoleAdmin, logger),
		user:         middleware.RequireRole(entity.RoleUser, logger),
		rateLimit:    limiter.Middleware(logger),
	}

	// Setup router
	router := setupRouter(handler, repo, deps, g, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	deps usecase.Dependencies,
	g guards,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(config.App.CORSOrigins)))
	r.Use(middleware.Metrics(deps.Metrics))

	// Apply routes
	wireAuth(r, handler.Auth, g)
	wirePackage(r, handler.Package, g)
	wireBooking(r, handler.Booking, g)
	wireUser(r, handler.User, g)
	wireAnalytics(r, handler.Analytics, g)

	// Health check endpoint
	r.Get("/health", healthHandler(repo, logger))
	r.Handle("/metrics", deps.Metrics.Handler())

	wireUploads(r, deps.Disk, config.Storage.URL)

	return r
}

type pinger interface {
	Ping(ctx context.Context) error
}

func healthHandler(store pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// bikin context dengan timeout biar gak ngegantung
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			logger.Warn("Health check failed", zap.Error(err))
			utils.ResponseJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		utils.ResponseSuccess(w, r, map[string]string{"status": "ok"})
	}
}

// wireUploads serves the local disk; S3 objects are fetched from the bucket URL directly.
func wireUploads(r chi.Router, disk storage.Disk, baseURL string) {
	local, ok := disk.(*storage.LocalDisk)
	if !ok || !strings.HasPrefix(baseURL, "/") {
		return
	}
	prefix := strings.TrimRight(baseURL, "/")
	r.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(http.Dir(local.Root()))))
}
