package adaptor

import (
	"net/http"

	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

// AnalyticsHandler serves the admin dashboard reads.
type AnalyticsHandler struct {
	service usecase.AnalyticsService
	log     *zap.Logger
}

func NewAnalyticsHandler(service usecase.AnalyticsService, log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		log:     log.With(zap.String("handler", "analytics")),
	}
}

// UsersWithBookings handles GET /api/analytics/users-bookings
func (h *AnalyticsHandler) UsersWithBookings(w http.ResponseWriter, r *http.Request) {
	req := pageFromQuery(r)
	result, err := h.service.UsersWithBookings(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "get users with bookings")
		return
	}

	utils.ResponseSuccess(w, r, result)
}

// PackageStatus handles GET /api/analytics/package-status
func (h *AnalyticsHandler) PackageStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.PackageStatus(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "get package status")
		return
	}

	utils.ResponseSuccess(w, r, result)
}

// BookingCount handles GET /api/analytics/booking-count
func (h *AnalyticsHandler) BookingCount(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.BookingCountPerPackage(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "get booking count per package")
		return
	}

	utils.ResponseSuccess(w, r, result)
}

func (h *AnalyticsHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	respondServiceError(w, r, h.log, err, operation)
}
