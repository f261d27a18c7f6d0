package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/dto/request"
	"travel-booking/pkg/metrics"
	"travel-booking/pkg/utils"
)

var defaultPricing = utils.PricingConfig{Food: 500, Accommodation: 500, Transportation: 500, GuidedTours: 500}

func newBookingService(bookings *BookingRepoMock, pkgs *PackageRepoMock) (*bookingService, *metrics.Metrics) {
	m := metrics.New()
	svc := NewBookingService(bookings, pkgs, NewPriceTable(defaultPricing), m, zap.NewNop()).(*bookingService)
	svc.now = fixedClock
	return svc, m
}

func TestPriceTable(t *testing.T) {
	table := NewPriceTable(defaultPricing)

	assert.Equal(t, 1500.0, table.Total(1000, []entity.Service{entity.ServiceFood}))
	assert.Equal(t, 3000.0, table.Total(1000, entity.AllServices))
	assert.Equal(t, 1000.0, table.Total(1000, nil))

	custom := NewPriceTable(utils.PricingConfig{Food: 500, Accommodation: 1000})
	assert.Equal(t, 1500.0, custom.Surcharge([]entity.Service{entity.ServiceFood, entity.ServiceAccommodation, entity.ServiceGuidedTours}))
	assert.Equal(t, 0.0, custom.Surcharge([]entity.Service{"Spa"}))
}

func TestUniqueServices(t *testing.T) {
	got := uniqueServices([]string{"Food", "Guided Tours", "Food", "Accommodation", "Guided Tours"})
	assert.Equal(t, []entity.Service{entity.ServiceFood, entity.ServiceGuidedTours, entity.ServiceAccommodation}, got)
	assert.Empty(t, uniqueServices(nil))
}

func TestBookingService_Create(t *testing.T) {
	userID := uuid.New()

	t.Run("server computes price", func(t *testing.T) {
		pkg := newTestPackage("NYC", "LA", 1000, fixedNow, fixedNow.AddDate(0, 0, 4))
		bookings := new(BookingRepoMock)
		svc, m := newBookingService(bookings, new(PackageRepoMock))

		bookings.On("CreateWithPackage", mock.Anything, mock.MatchedBy(func(b *entity.Booking) bool {
			return b.UserID == userID && b.PackageID == pkg.ID && b.Status == entity.BookingStatusAccepted
		})).Return(pkg, nil).Once()

		resp, err := svc.Create(context.Background(), userID, &request.CreateBookingRequest{
			PackageID:        pkg.ID.String(),
			SelectedServices: []string{"Food", "Food"},
		})
		require.NoError(t, err)

		assert.Equal(t, 1500.0, resp.TotalPrice)
		assert.Equal(t, []entity.Service{entity.ServiceFood}, resp.SelectedServices)
		assert.Equal(t, entity.BookingStatusAccepted, resp.Status)
		require.NotNil(t, resp.Package)
		assert.Equal(t, "NYC", resp.Package.From)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsCreated))
	})

	t.Run("package missing or deleted", func(t *testing.T) {
		bookings := new(BookingRepoMock)
		svc, m := newBookingService(bookings, new(PackageRepoMock))
		bookings.On("CreateWithPackage", mock.Anything, mock.Anything).Return(nil, nil).Once()

		_, err := svc.Create(context.Background(), userID, &request.CreateBookingRequest{PackageID: uuid.NewString()})
		requireKind(t, err, utils.ErrNotFound, msgPackageNotFound)
		assert.Equal(t, 0.0, testutil.ToFloat64(m.BookingsCreated))
	})

	t.Run("malformed package id", func(t *testing.T) {
		bookings := new(BookingRepoMock)
		svc, _ := newBookingService(bookings, new(PackageRepoMock))

		_, err := svc.Create(context.Background(), userID, &request.CreateBookingRequest{PackageID: "42"})
		requireKind(t, err, utils.ErrNotFound, "")
		bookings.AssertNotCalled(t, "CreateWithPackage", mock.Anything, mock.Anything)
	})

	t.Run("unknown service adds nothing", func(t *testing.T) {
		pkg := newTestPackage("NYC", "LA", 1000, fixedNow, fixedNow.AddDate(0, 0, 4))
		bookings := new(BookingRepoMock)
		svc, _ := newBookingService(bookings, new(PackageRepoMock))
		bookings.On("CreateWithPackage", mock.Anything, mock.Anything).Return(pkg, nil).Once()

		resp, err := svc.Create(context.Background(), userID, &request.CreateBookingRequest{
			PackageID:        pkg.ID.String(),
			SelectedServices: []string{"Food", "Helicopter"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1500.0, resp.TotalPrice)
		assert.Equal(t, []entity.Service{entity.ServiceFood, "Helicopter"}, resp.SelectedServices)
	})

	t.Run("too many services", func(t *testing.T) {
		bookings := new(BookingRepoMock)
		svc, _ := newBookingService(bookings, new(PackageRepoMock))

		services := make([]string, 17)
		for i := range services {
			services[i] = "Food"
		}
		_, err := svc.Create(context.Background(), userID, &request.CreateBookingRequest{
			PackageID:        uuid.NewString(),
			SelectedServices: services,
		})
		appErr := requireKind(t, err, utils.ErrValidation, "")
		assert.Contains(t, appErr.Fields, "selectedServices")
		bookings.AssertNotCalled(t, "CreateWithPackage", mock.Anything, mock.Anything)
	})
}

func TestBookingService_ListMine(t *testing.T) {
	userID := uuid.New()
	live := newTestPackage("Paris", "Rome", 800, fixedNow, fixedNow.AddDate(0, 0, 2))

	withPkg := &entity.BookingWithPackage{Package: live}
	withPkg.ID = uuid.New()
	withPkg.UserID = userID
	withPkg.PackageID = live.ID

	orphan := &entity.BookingWithPackage{}
	orphan.ID = uuid.New()
	orphan.UserID = userID
	orphan.PackageID = uuid.New()

	bookings := new(BookingRepoMock)
	svc, _ := newBookingService(bookings, new(PackageRepoMock))
	bookings.On("FindByUserID", mock.Anything, userID, request.DefaultPerPage, 0).
		Return([]*entity.BookingWithPackage{withPkg, orphan}, nil).Once()
	bookings.On("CountByUserID", mock.Anything, userID).Return(int64(2), nil).Once()

	resp, err := svc.ListMine(context.Background(), userID, &request.PaginatedRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)
	require.NotNil(t, resp.Data[0].Package)
	assert.Equal(t, "Paris", resp.Data[0].Package.From)
	assert.Nil(t, resp.Data[1].Package)
	assert.Equal(t, int64(2), resp.Pagination.Total)
}

func TestBookingService_Cancel(t *testing.T) {
	userID := uuid.New()
	pkg := newTestPackage("NYC", "LA", 1000, fixedNow, fixedNow.AddDate(0, 0, 4))

	newBooking := func(owner uuid.UUID, status entity.BookingStatus) *entity.Booking {
		b := &entity.Booking{UserID: owner, PackageID: pkg.ID, Status: status, TotalPrice: 1000}
		b.ID = uuid.New()
		return b
	}

	t.Run("own booking", func(t *testing.T) {
		booking := newBooking(userID, entity.BookingStatusAccepted)
		bookings := new(BookingRepoMock)
		pkgs := new(PackageRepoMock)
		svc, _ := newBookingService(bookings, pkgs)

		bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil).Once()
		bookings.On("UpdateStatus", mock.Anything, booking.ID, entity.BookingStatusCancelled, fixedNow).Return(nil).Once()
		pkgs.On("FindByID", mock.Anything, pkg.ID).Return(pkg, nil).Once()

		resp, err := svc.Cancel(context.Background(), userID, booking.ID.String())
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusCancelled, resp.Status)
		require.NotNil(t, resp.Package)
		bookings.AssertExpectations(t)
	})

	t.Run("someone else's booking", func(t *testing.T) {
		booking := newBooking(uuid.New(), entity.BookingStatusAccepted)
		bookings := new(BookingRepoMock)
		svc, _ := newBookingService(bookings, new(PackageRepoMock))
		bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil).Once()

		_, err := svc.Cancel(context.Background(), userID, booking.ID.String())
		requireKind(t, err, utils.ErrNotFound, msgBookingNotFound)
		bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already cancelled", func(t *testing.T) {
		booking := newBooking(userID, entity.BookingStatusCancelled)
		bookings := new(BookingRepoMock)
		svc, _ := newBookingService(bookings, new(PackageRepoMock))
		bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil).Once()

		_, err := svc.Cancel(context.Background(), userID, booking.ID.String())
		requireKind(t, err, utils.ErrValidation, "Booking already cancelled")
	})
}
