package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/cache"
	"travel-booking/pkg/metrics"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgPackageNotFound = "Package not found"
	msgInvalidDate     = "Invalid date, use YYYY-MM-DD"
)

type PackageService interface {
	List(ctx context.Context, req *request.PackageListRequest) (*response.PaginatedResponse[response.PackageResponse], error)
	GetByID(ctx context.Context, id string) (*response.PackageResponse, error)

	// Admin endpoints
	Create(ctx context.Context, adminID uuid.UUID, req *request.CreatePackageRequest) (*response.PackageResponse, error)
	Update(ctx context.Context, id string, req *request.UpdatePackageRequest) (*response.PackageResponse, error)
	Delete(ctx context.Context, id string) error
}

type packageService struct {
	packages repository.PackageRepository
	cache    cache.Cache
	cacheTTL time.Duration
	metrics  *metrics.Metrics
	now      clock
	log      *zap.Logger
}

func NewPackageService(
	packages repository.PackageRepository,
	c cache.Cache,
	cacheTTL time.Duration,
	m *metrics.Metrics,
	log *zap.Logger,
) PackageService {
	return &packageService{
		packages: packages,
		cache:    c,
		cacheTTL: cacheTTL,
		metrics:  m,
		now:      utcNow,
		log:      log.With(zap.String("service", "package")),
	}
}

func packageCacheKey(id uuid.UUID) string {
	return "package:" + id.String()
}

func (s *packageService) List(ctx context.Context, req *request.PackageListRequest) (*response.PaginatedResponse[response.PackageResponse], error) {
	req.PaginatedRequest = request.NewPaginatedRequest(req.Page, req.PerPage)
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	filter, err := packageFilterFromRequest(req)
	if err != nil {
		return nil, err
	}

	pkgs, err := s.packages.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}

	total, err := s.packages.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count packages: %w", err)
	}

	return response.NewPaginatedResponse(response.PackagesToResponse(pkgs), req.Page, req.Limit(), total), nil
}

func packageFilterFromRequest(req *request.PackageListRequest) (entity.PackageFilter, error) {
	filter := entity.PackageFilter{
		From: strings.TrimSpace(req.From),
		To:   strings.TrimSpace(req.To),
		Sort: entity.PackageSort(req.Sort),
	}

	fields := make(map[string]string)
	parse := func(field, value string) *time.Time {
		if value == "" {
			return nil
		}
		t, err := utils.ParseDate(value)
		if err != nil {
			fields[field] = msgInvalidDate
			return nil
		}
		return &t
	}

	filter.Date = parse("date", req.Date)
	filter.StartFrom = parse("start_date", req.StartDate)
	filter.EndBy = parse("end_date", req.EndDate)

	if len(fields) > 0 {
		return filter, utils.NewValidationError("Validation failed", fields)
	}
	return filter, nil
}

func (s *packageService) GetByID(ctx context.Context, id string) (*response.PackageResponse, error) {
	pkgID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.NewNotFoundError(msgPackageNotFound)
	}

	var cached response.PackageResponse
	hit, err := s.cache.Get(ctx, packageCacheKey(pkgID), &cached)
	if err != nil {
		s.log.Warn("Package cache read failed", zap.Error(err), zap.String("package_id", id))
	}
	if hit {
		s.metrics.CacheHits.Inc()
		return &cached, nil
	}
	s.metrics.CacheMisses.Inc()

	pkg, err := s.packages.FindByID(ctx, pkgID)
	if err != nil {
		return nil, fmt.Errorf("find package %s: %w", id, err)
	}
	if pkg == nil {
		return nil, utils.NewNotFoundError(msgPackageNotFound)
	}

	resp := response.PackageToResponse(pkg)
	if err := s.cache.Set(ctx, packageCacheKey(pkgID), resp, s.cacheTTL); err != nil {
		s.log.Warn("Package cache write failed", zap.Error(err), zap.String("package_id", id))
	}

	return &resp, nil
}

func (s *packageService) Create(ctx context.Context, adminID uuid.UUID, req *request.CreatePackageRequest) (*response.PackageResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	start, startErr := utils.ParseDate(req.StartDate)
	end, endErr := utils.ParseDate(req.EndDate)
	if fields := dateErrors(startErr, endErr); fields != nil {
		return nil, utils.NewValidationError("Validation failed", fields)
	}

	now := s.now()
	pkg := &entity.TravelPackage{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		From:             strings.TrimSpace(req.From),
		To:               strings.TrimSpace(req.To),
		StartDate:        start,
		EndDate:          end,
		BasePrice:        *req.BasePrice,
		IncludedServices: uniqueServices(req.IncludedServices),
		CreatedBy:        adminID,
		Description:      req.Description,
		ImageURL:         req.ImageURL,
	}

	if err := validatePackage(pkg); err != nil {
		return nil, err
	}

	if err := s.packages.Create(ctx, pkg); err != nil {
		return nil, fmt.Errorf("create package: %w", err)
	}

	s.log.Info("Package created",
		zap.String("package_id", pkg.ID.String()),
		zap.String("admin_id", adminID.String()))

	resp := response.PackageToResponse(pkg)
	return &resp, nil
}

func (s *packageService) Update(ctx context.Context, id string, req *request.UpdatePackageRequest) (*response.PackageResponse, error) {
	pkgID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.NewNotFoundError(msgPackageNotFound)
	}

	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	pkg, err := s.packages.FindByID(ctx, pkgID)
	if err != nil {
		return nil, fmt.Errorf("find package %s: %w", id, err)
	}
	if pkg == nil {
		return nil, utils.NewNotFoundError(msgPackageNotFound)
	}

	if err := applyPackageUpdate(pkg, req); err != nil {
		return nil, err
	}
	if err := validatePackage(pkg); err != nil {
		return nil, err
	}
	pkg.UpdatedAt = s.now()

	if err := s.packages.Update(ctx, pkg); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError(msgPackageNotFound)
		}
		return nil, fmt.Errorf("update package %s: %w", id, err)
	}
	s.invalidate(ctx, pkgID)

	s.log.Info("Package updated", zap.String("package_id", id))

	resp := response.PackageToResponse(pkg)
	return &resp, nil
}

func (s *packageService) Delete(ctx context.Context, id string) error {
	pkgID, err := uuid.Parse(id)
	if err != nil {
		return utils.NewNotFoundError(msgPackageNotFound)
	}

	if err := s.packages.Delete(ctx, pkgID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NewNotFoundError(msgPackageNotFound)
		}
		return fmt.Errorf("delete package %s: %w", id, err)
	}
	s.invalidate(ctx, pkgID)

	return nil
}

func (s *packageService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Invalidate(ctx, packageCacheKey(id)); err != nil {
		s.log.Warn("Package cache invalidation failed", zap.Error(err), zap.String("package_id", id.String()))
	}
}

// applyPackageUpdate merges the supplied fields into pkg.
func applyPackageUpdate(pkg *entity.TravelPackage, req *request.UpdatePackageRequest) error {
	var startErr, endErr error

	if req.From != nil {
		pkg.From = strings.TrimSpace(*req.From)
	}
	if req.To != nil {
		pkg.To = strings.TrimSpace(*req.To)
	}
	if req.StartDate != nil {
		var t time.Time
		if t, startErr = utils.ParseDate(*req.StartDate); startErr == nil {
			pkg.StartDate = t
		}
	}
	if req.EndDate != nil {
		var t time.Time
		if t, endErr = utils.ParseDate(*req.EndDate); endErr == nil {
			pkg.EndDate = t
		}
	}
	if fields := dateErrors(startErr, endErr); fields != nil {
		return utils.NewValidationError("Validation failed", fields)
	}

	if req.BasePrice != nil {
		pkg.BasePrice = *req.BasePrice
	}
	if req.IncludedServices != nil {
		pkg.IncludedServices = uniqueServices(req.IncludedServices)
	}
	if req.Description != nil {
		pkg.Description = req.Description
	}
	if req.ImageURL != nil {
		pkg.ImageURL = req.ImageURL
	}
	return nil
}

// validatePackage checks the invariants that span fields.
func validatePackage(pkg *entity.TravelPackage) error {
	fields := make(map[string]string)
	if pkg.From == "" {
		fields["from"] = "This field is required"
	}
	if pkg.To == "" {
		fields["to"] = "This field is required"
	}
	if pkg.BasePrice < 0 {
		fields["basePrice"] = "Must be greater than or equal to 0"
	}
	if pkg.StartDate.After(pkg.EndDate) {
		fields["endDate"] = "Must be on or after startDate"
	}
	for _, s := range pkg.IncludedServices {
		if !s.Valid() {
			fields["includedServices"] = fmt.Sprintf("Unknown service %q", s)
			break
		}
	}

	if len(fields) > 0 {
		return utils.NewValidationError("Validation failed", fields)
	}
	return nil
}

func dateErrors(startErr, endErr error) map[string]string {
	if startErr == nil && endErr == nil {
		return nil
	}
	fields := make(map[string]string)
	if startErr != nil {
		fields["startDate"] = msgInvalidDate
	}
	if endErr != nil {
		fields["endDate"] = msgInvalidDate
	}
	return fields
}
