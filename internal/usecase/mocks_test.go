package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/google"
)

type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *UserRepoMock) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	args := m.Called(ctx, limit, offset)
	users, _ := args.Get(0).([]*entity.User)
	return users, args.Error(1)
}

func (m *UserRepoMock) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

type PackageRepoMock struct {
	mock.Mock
}

func (m *PackageRepoMock) Create(ctx context.Context, pkg *entity.TravelPackage) error {
	return m.Called(ctx, pkg).Error(0)
}

func (m *PackageRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*entity.TravelPackage, error) {
	args := m.Called(ctx, id)
	pkg, _ := args.Get(0).(*entity.TravelPackage)
	return pkg, args.Error(1)
}

func (m *PackageRepoMock) FindAll(ctx context.Context, filter entity.PackageFilter, limit, offset int) ([]*entity.TravelPackage, error) {
	args := m.Called(ctx, filter, limit, offset)
	pkgs, _ := args.Get(0).([]*entity.TravelPackage)
	return pkgs, args.Error(1)
}

func (m *PackageRepoMock) Count(ctx context.Context, filter entity.PackageFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PackageRepoMock) ListAll(ctx context.Context) ([]*entity.TravelPackage, error) {
	args := m.Called(ctx)
	pkgs, _ := args.Get(0).([]*entity.TravelPackage)
	return pkgs, args.Error(1)
}

func (m *PackageRepoMock) Update(ctx context.Context, pkg *entity.TravelPackage) error {
	return m.Called(ctx, pkg).Error(0)
}

func (m *PackageRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type BookingRepoMock struct {
	mock.Mock
}

// CreateWithPackage prices the booking against the package handed to Return, like the real adapters.
func (m *BookingRepoMock) CreateWithPackage(ctx context.Context, booking *entity.Booking, price repository.PriceFunc) (*entity.TravelPackage, error) {
	args := m.Called(ctx, booking)
	pkg, _ := args.Get(0).(*entity.TravelPackage)
	if pkg != nil && args.Error(1) == nil {
		booking.TotalPrice = price(pkg)
	}
	return pkg, args.Error(1)
}

func (m *BookingRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	booking, _ := args.Get(0).(*entity.Booking)
	return booking, args.Error(1)
}

func (m *BookingRepoMock) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingWithPackage, error) {
	args := m.Called(ctx, userID, limit, offset)
	bookings, _ := args.Get(0).([]*entity.BookingWithPackage)
	return bookings, args.Error(1)
}

func (m *BookingRepoMock) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *BookingRepoMock) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]*entity.BookingWithPackage, error) {
	args := m.Called(ctx, userIDs)
	bookings, _ := args.Get(0).([]*entity.BookingWithPackage)
	return bookings, args.Error(1)
}

func (m *BookingRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus, updatedAt time.Time) error {
	return m.Called(ctx, id, status, updatedAt).Error(0)
}

func (m *BookingRepoMock) CountPerPackage(ctx context.Context) ([]*entity.PackageBookingCount, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).([]*entity.PackageBookingCount)
	return counts, args.Error(1)
}

type GoogleVerifierMock struct {
	mock.Mock
}

func (m *GoogleVerifierMock) Verify(ctx context.Context, credential string) (*google.Profile, error) {
	args := m.Called(ctx, credential)
	profile, _ := args.Get(0).(*google.Profile)
	return profile, args.Error(1)
}

var fixedNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newTestUser(role entity.UserRole) *entity.User {
	u := &entity.User{Email: string(role) + "@test.com", Role: role}
	u.ID = uuid.New()
	u.CreatedAt = fixedNow
	u.UpdatedAt = fixedNow
	return u
}

func newTestPackage(from, to string, price float64, start, end time.Time) *entity.TravelPackage {
	p := &entity.TravelPackage{
		From:      from,
		To:        to,
		BasePrice: price,
		StartDate: start,
		EndDate:   end,
		CreatedBy: uuid.New(),
	}
	p.ID = uuid.New()
	p.CreatedAt = fixedNow
	p.UpdatedAt = fixedNow
	return p
}
