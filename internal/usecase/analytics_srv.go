package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnalyticsService backs the admin dashboard. Everything here is read-only.
type AnalyticsService interface {
	UsersWithBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserBookingsResponse], error)
	PackageStatus(ctx context.Context) (*response.PackageStatusResponse, error)
	BookingCountPerPackage(ctx context.Context) ([]response.PackageBookingCountResponse, error)
}

type analyticsService struct {
	repo *repository.Repository
	now  clock
	log  *zap.Logger
}

func NewAnalyticsService(repo *repository.Repository, log *zap.Logger) AnalyticsService {
	return &analyticsService{
		repo: repo,
		now:  utcNow,
		log:  log.With(zap.String("service", "analytics")),
	}
}

func (s *analyticsService) UsersWithBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserBookingsResponse], error) {
	page := request.NewPaginatedRequest(req.Page, req.PerPage)

	users, err := s.repo.User.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	total, err := s.repo.User.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	ids := make([]uuid.UUID, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}

	var bookings []*entity.BookingWithPackage
	if len(ids) > 0 {
		bookings, err = s.repo.Booking.FindByUserIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("list bookings of user page: %w", err)
		}
	}

	byUser := make(map[uuid.UUID][]*entity.BookingWithPackage, len(users))
	for _, b := range bookings {
		byUser[b.UserID] = append(byUser[b.UserID], b)
	}

	data := make([]response.UserBookingsResponse, 0, len(users))
	for _, u := range users {
		data = append(data, response.UserBookingsResponse{
			User:     response.UserToResponse(u),
			Bookings: response.BookingsToResponse(byUser[u.ID]),
		})
	}

	return response.NewPaginatedResponse(data, page.Page, page.Limit(), total), nil
}

func (s *analyticsService) PackageStatus(ctx context.Context) (*response.PackageStatusResponse, error) {
	pkgs, err := s.repo.Package.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}

	completed, active, upcoming := PartitionPackages(pkgs, s.now())

	return &response.PackageStatusResponse{
		Completed: response.PackagesToResponse(completed),
		Active:    response.PackagesToResponse(active),
		Upcoming:  response.PackagesToResponse(upcoming),
	}, nil
}

// PartitionPackages splits pkgs by where now falls relative to each date range.
// Every package lands in exactly one bucket.
func PartitionPackages(pkgs []*entity.TravelPackage, now time.Time) (completed, active, upcoming []*entity.TravelPackage) {
	for _, p := range pkgs {
		switch {
		case p.EndDate.Before(now):
			completed = append(completed, p)
		case p.StartDate.After(now):
			upcoming = append(upcoming, p)
		default:
			active = append(active, p)
		}
	}
	return completed, active, upcoming
}

func (s *analyticsService) BookingCountPerPackage(ctx context.Context) ([]response.PackageBookingCountResponse, error) {
	counts, err := s.repo.Booking.CountPerPackage(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings per package: %w", err)
	}

	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].PackageName < counts[j].PackageName
	})

	out := make([]response.PackageBookingCountResponse, 0, len(counts))
	for _, c := range counts {
		out = append(out, response.PackageBookingCountResponse{
			PackageID:   c.PackageID.String(),
			PackageName: c.PackageName,
			Count:       c.Count,
		})
	}
	return out, nil
}
