package usecase

import (
	"context"
	"errors"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/metrics"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const msgBookingNotFound = "Booking not found"

type BookingService interface {
	// Public endpoints (butuh auth, role user)
	Create(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	ListMine(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	Cancel(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error)
}

type bookingService struct {
	bookings repository.BookingRepository
	packages repository.PackageRepository
	prices   PriceTable
	metrics  *metrics.Metrics
	now      clock
	log      *zap.Logger
}

func NewBookingService(
	bookings repository.BookingRepository,
	packages repository.PackageRepository,
	prices PriceTable,
	m *metrics.Metrics,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		bookings: bookings,
		packages: packages,
		prices:   prices,
		metrics:  m,
		now:      utcNow,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Create(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if err := utils.Validate(req); err != nil {
		s.log.Warn("Create booking validation failed", zap.Error(err))
		return nil, err
	}

	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return nil, utils.NewNotFoundError(msgPackageNotFound)
	}

	now := s.now()
	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:           userID,
		PackageID:        packageID,
		SelectedServices: uniqueServices(req.SelectedServices),
		Status:           entity.BookingStatusAccepted,
	}

	pkg, err := s.bookings.CreateWithPackage(ctx, booking, func(pkg *entity.TravelPackage) float64 {
		return s.prices.Total(pkg.BasePrice, booking.SelectedServices)
	})
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if pkg == nil {
		return nil, utils.NewNotFoundError(msgPackageNotFound)
	}

	s.metrics.BookingsCreated.Inc()
	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("package_id", packageID.String()),
		zap.Float64("total_price", booking.TotalPrice))

	resp := response.BookingToResponse(booking, pkg)
	return &resp, nil
}

func (s *bookingService) ListMine(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	page := request.NewPaginatedRequest(req.Page, req.PerPage)

	bookings, err := s.bookings.FindByUserID(ctx, userID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list bookings of %s: %w", userID, err)
	}

	total, err := s.bookings.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count bookings of %s: %w", userID, err)
	}

	return response.NewPaginatedResponse(response.BookingsToResponse(bookings), page.Page, page.Limit(), total), nil
}

func (s *bookingService) Cancel(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, utils.NewNotFoundError(msgBookingNotFound)
	}

	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking %s: %w", bookingID, err)
	}
	// someone else's booking looks exactly like a missing one
	if booking == nil || booking.UserID != userID {
		return nil, utils.NewNotFoundError(msgBookingNotFound)
	}

	if booking.Status == entity.BookingStatusCancelled {
		return nil, utils.NewValidationError("Booking already cancelled", nil)
	}

	booking.Status = entity.BookingStatusCancelled
	booking.UpdatedAt = s.now()
	if err := s.bookings.UpdateStatus(ctx, booking.ID, booking.Status, booking.UpdatedAt); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError(msgBookingNotFound)
		}
		return nil, fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}

	pkg, err := s.packages.FindByID(ctx, booking.PackageID)
	if err != nil {
		s.log.Warn("Failed to load package of cancelled booking", zap.Error(err), zap.String("booking_id", bookingID))
		pkg = nil
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("user_id", userID.String()))

	resp := response.BookingToResponse(booking, pkg)
	return &resp, nil
}
