package usecase

import (
	"time"

	"travel-booking/internal/data/repository"
	"travel-booking/pkg/cache"
	"travel-booking/pkg/google"
	"travel-booking/pkg/metrics"
	"travel-booking/pkg/storage"
	"travel-booking/pkg/token"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

// Dependencies are the infrastructure clients shared by the services.
type Dependencies struct {
	Tokens  token.Maker
	Google  google.Verifier
	Cache   cache.Cache
	Disk    storage.Disk
	Metrics *metrics.Metrics
}

type Service struct {
	Auth      AuthService
	User      UserService
	Package   PackageService
	Booking   BookingService
	Analytics AnalyticsService
}

func NewService(repo *repository.Repository, deps Dependencies, config *utils.Config, log *zap.Logger) *Service {
	if deps.Cache == nil {
		deps.Cache = cache.Noop{}
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}

	return &Service{
		Auth:      NewAuthService(repo.User, deps.Tokens, deps.Google, log),
		User:      NewUserService(repo.User, deps.Disk, log),
		Package:   NewPackageService(repo.Package, deps.Cache, config.Redis.TTL, deps.Metrics, log),
		Booking:   NewBookingService(repo.Booking, repo.Package, NewPriceTable(config.Pricing), deps.Metrics, log),
		Analytics: NewAnalyticsService(repo, log),
	}
}

// clock is swapped in tests.
type clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}
