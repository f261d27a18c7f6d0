package adaptor

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/utils"
)

func newBookingRouter(service *BookingServiceMock) *chi.Mux {
	h := NewBookingHandler(service, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/api/bookings", h.GetUserBookings)
	r.Post("/api/bookings", h.CreateBooking)
	r.Post("/api/bookings/{id}/cancel", h.CancelBooking)
	return r
}

func TestBookingHandler_Create(t *testing.T) {
	user := newTestUser(entity.RoleUser)
	service := new(BookingServiceMock)
	service.On("Create", mock.Anything, user.ID, mock.MatchedBy(func(req *request.CreateBookingRequest) bool {
		return req.PackageID == "p1" && len(req.SelectedServices) == 1 && req.SelectedServices[0] == "Food"
	})).Return(&response.BookingResponse{ID: "b1", TotalPrice: 1500, Status: entity.BookingStatusAccepted}, nil).Once()

	rec := httptest.NewRecorder()
	newBookingRouter(service).ServeHTTP(rec, newRequest(http.MethodPost, "/api/bookings",
		`{"packageId":"p1","selectedServices":["Food"],"totalPrice":1}`, user))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalPrice":1500`)
	service.AssertExpectations(t)
}

func TestBookingHandler_CreateMissingPackage(t *testing.T) {
	user := newTestUser(entity.RoleUser)
	service := new(BookingServiceMock)
	service.On("Create", mock.Anything, user.ID, mock.Anything).
		Return(nil, utils.NewNotFoundError("Package not found")).Once()

	rec := httptest.NewRecorder()
	newBookingRouter(service).ServeHTTP(rec, newRequest(http.MethodPost, "/api/bookings", `{"packageId":"gone"}`, user))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingHandler_ListMine(t *testing.T) {
	user := newTestUser(entity.RoleUser)
	service := new(BookingServiceMock)
	service.On("ListMine", mock.Anything, user.ID, &request.PaginatedRequest{Page: 2, PerPage: 10}).
		Return(&response.PaginatedResponse[response.BookingResponse]{Data: []response.BookingResponse{}}, nil).Once()

	rec := httptest.NewRecorder()
	newBookingRouter(service).ServeHTTP(rec, newRequest(http.MethodGet, "/api/bookings?page=2", "", user))

	assert.Equal(t, http.StatusOK, rec.Code)
	service.AssertExpectations(t)
}

func TestBookingHandler_Cancel(t *testing.T) {
	user := newTestUser(entity.RoleUser)

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"cancelled", nil, http.StatusOK},
		{"foreign or missing", utils.NewNotFoundError("Booking not found"), http.StatusNotFound},
		{"already cancelled", utils.NewValidationError("Booking already cancelled", nil), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(BookingServiceMock)
			var resp *response.BookingResponse
			if tt.err == nil {
				resp = &response.BookingResponse{ID: "b1", Status: entity.BookingStatusCancelled}
			}
			service.On("Cancel", mock.Anything, user.ID, "b1").Return(resp, tt.err).Once()

			rec := httptest.NewRecorder()
			newBookingRouter(service).ServeHTTP(rec, newRequest(http.MethodPost, "/api/bookings/b1/cancel", "", user))

			assert.Equal(t, tt.wantCode, rec.Code)
			service.AssertExpectations(t)
		})
	}
}
