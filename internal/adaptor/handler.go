package adaptor

import (
	"errors"
	"net/http"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/render"
	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Package   *PackageHandler
	Booking   *BookingHandler
	Analytics *AnalyticsHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		User:      NewUserHandler(service.User, config.Storage.MaxUploadMB<<20, log),
		Package:   NewPackageHandler(service.Package, log),
		Booking:   NewBookingHandler(service.Booking, log),
		Analytics: NewAnalyticsHandler(service.Analytics, log),
	}
}

// decodeJSON reads the request body into v; unknown fields are ignored.
func decodeJSON(r *http.Request, v any) error {
	return render.DecodeJSON(r.Body, v)
}

// pageFromQuery reads ?page= and ?per_page=.
func pageFromQuery(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	return request.NewPaginatedRequest(
		utils.ParseInt(query.Get("page"), 1),
		utils.ParseInt(query.Get("per_page"), request.DefaultPerPage),
	)
}

// currentUser mendapatkan user dari context (di-set oleh Authenticate)
func currentUser(w http.ResponseWriter, r *http.Request) (*entity.User, bool) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, r, "Authentication required")
		return nil, false
	}
	return user, true
}

// respondServiceError maps a classified service error to its status code; anything
// unclassified is logged and answered with a generic 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error, operation string) {
	appErr, ok := utils.AsAppError(err)
	if !ok {
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, r)
		return
	}

	switch {
	case errors.Is(appErr, utils.ErrValidation):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, r, appErr.Message, appErr.Fields)

	case errors.Is(appErr, utils.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.String("reason", appErr.Message))
		utils.ResponseUnauthorized(w, r, appErr.Message)

	case errors.Is(appErr, utils.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.String("reason", appErr.Message))
		utils.ResponseForbidden(w, r, appErr.Message, appErr.Redirect)

	case errors.Is(appErr, utils.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.String("reason", appErr.Message))
		utils.ResponseNotFound(w, r, appErr.Message)

	case errors.Is(appErr, utils.ErrConflict):
		log.Warn(operation+" failed - already exists", zap.String("reason", appErr.Message))
		utils.ResponseConflict(w, r, appErr.Message)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, r)
	}
}
