package adaptor

import (
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, r, "Invalid request body", nil)
		return
	}

	booking, err := h.service.Create(r.Context(), user.ID, &req)
	if err != nil {
		h.handleServiceError(w, r, err, "create booking")
		return
	}

	utils.ResponseCreated(w, r, booking)
}

// GetUserBookings handles GET /api/bookings (protected)
func (h *BookingHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	req := pageFromQuery(r)
	bookings, err := h.service.ListMine(r.Context(), user.ID, &req)
	if err != nil {
		h.handleServiceError(w, r, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, r, bookings)
}

// CancelBooking handles POST /api/bookings/{id}/cancel (protected)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	booking, err := h.service.Cancel(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, r, booking)
}

func (h *BookingHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	respondServiceError(w, r, h.log, err, operation)
}
