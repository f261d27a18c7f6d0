package adaptor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/utils"
)

type AuthServiceMock struct{ mock.Mock }

func (m *AuthServiceMock) Signup(ctx context.Context, req *request.SignupRequest) (*response.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.AuthResponse)
	return resp, args.Error(1)
}

func (m *AuthServiceMock) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.AuthResponse)
	return resp, args.Error(1)
}

func (m *AuthServiceMock) AdminLogin(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.AuthResponse)
	return resp, args.Error(1)
}

func (m *AuthServiceMock) LoginWithGoogle(ctx context.Context, req *request.GoogleLoginRequest) (*response.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.AuthResponse)
	return resp, args.Error(1)
}

func (m *AuthServiceMock) CheckAuth(ctx context.Context, tokenStr string) (*response.UserResponse, error) {
	args := m.Called(ctx, tokenStr)
	resp, _ := args.Get(0).(*response.UserResponse)
	return resp, args.Error(1)
}

func (m *AuthServiceMock) CreateAdmin(ctx context.Context, req *request.CreateAdminRequest) (*response.UserResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.UserResponse)
	return resp, args.Error(1)
}

type PackageServiceMock struct{ mock.Mock }

func (m *PackageServiceMock) List(ctx context.Context, req *request.PackageListRequest) (*response.PaginatedResponse[response.PackageResponse], error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.PaginatedResponse[response.PackageResponse])
	return resp, args.Error(1)
}

func (m *PackageServiceMock) GetByID(ctx context.Context, id string) (*response.PackageResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*response.PackageResponse)
	return resp, args.Error(1)
}

func (m *PackageServiceMock) Create(ctx context.Context, adminID uuid.UUID, req *request.CreatePackageRequest) (*response.PackageResponse, error) {
	args := m.Called(ctx, adminID, req)
	resp, _ := args.Get(0).(*response.PackageResponse)
	return resp, args.Error(1)
}

func (m *PackageServiceMock) Update(ctx context.Context, id string, req *request.UpdatePackageRequest) (*response.PackageResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*response.PackageResponse)
	return resp, args.Error(1)
}

func (m *PackageServiceMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type BookingServiceMock struct{ mock.Mock }

func (m *BookingServiceMock) Create(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, userID, req)
	resp, _ := args.Get(0).(*response.BookingResponse)
	return resp, args.Error(1)
}

func (m *BookingServiceMock) ListMine(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	args := m.Called(ctx, userID, req)
	resp, _ := args.Get(0).(*response.PaginatedResponse[response.BookingResponse])
	return resp, args.Error(1)
}

func (m *BookingServiceMock) Cancel(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	args := m.Called(ctx, userID, bookingID)
	resp, _ := args.Get(0).(*response.BookingResponse)
	return resp, args.Error(1)
}

type UserServiceMock struct{ mock.Mock }

func (m *UserServiceMock) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	args := m.Called(ctx, userID)
	resp, _ := args.Get(0).(*response.UserResponse)
	return resp, args.Error(1)
}

func (m *UserServiceMock) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	args := m.Called(ctx, userID, req)
	resp, _ := args.Get(0).(*response.UserResponse)
	return resp, args.Error(1)
}

func (m *UserServiceMock) UploadProfilePicture(ctx context.Context, userID uuid.UUID, file io.Reader) (*response.UserResponse, error) {
	args := m.Called(ctx, userID, file)
	resp, _ := args.Get(0).(*response.UserResponse)
	return resp, args.Error(1)
}

type AnalyticsServiceMock struct{ mock.Mock }

func (m *AnalyticsServiceMock) UsersWithBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserBookingsResponse], error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.PaginatedResponse[response.UserBookingsResponse])
	return resp, args.Error(1)
}

func (m *AnalyticsServiceMock) PackageStatus(ctx context.Context) (*response.PackageStatusResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*response.PackageStatusResponse)
	return resp, args.Error(1)
}

func (m *AnalyticsServiceMock) BookingCountPerPackage(ctx context.Context) ([]response.PackageBookingCountResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).([]response.PackageBookingCountResponse)
	return resp, args.Error(1)
}

// ==================== HELPER METHODS ====================

func newTestUser(role entity.UserRole) *entity.User {
	return &entity.User{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		Email:        "someone@example.com",
		Role:         role,
	}
}

// newRequest builds a request, optionally as the given caller.
func newRequest(method, target, body string, user *entity.User) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req = req.WithContext(utils.SetUserContext(req.Context(), user))
	}
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) utils.ErrorResponse {
	t.Helper()
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}
