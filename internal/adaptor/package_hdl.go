package adaptor

import (
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PackageHandler struct {
	service usecase.PackageService
	log     *zap.Logger
}

func NewPackageHandler(service usecase.PackageService, log *zap.Logger) *PackageHandler {
	return &PackageHandler{
		service: service,
		log:     log.With(zap.String("handler", "package")),
	}
}

// ListPackages handles GET /api/packages (public)
func (h *PackageHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PackageListRequest{
		PaginatedRequest: pageFromQuery(r),
		From:             query.Get("from"),
		To:               query.Get("to"),
		Date:             query.Get("date"),
		StartDate:        query.Get("start_date"),
		EndDate:          query.Get("end_date"),
		Sort:             query.Get("sort"),
	}

	packages, err := h.service.List(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, r, err, "list packages")
		return
	}

	utils.ResponseSuccess(w, r, packages)
}

// GetPackage handles GET /api/packages/{id} (public)
func (h *PackageHandler) GetPackage(w http.ResponseWriter, r *http.Request) {
	pkg, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err, "get package")
		return
	}

	utils.ResponseSuccess(w, r, pkg)
}

// ==================== ADMIN METHODS ====================

// CreatePackage handles POST /api/packages (admin only)
func (h *PackageHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	admin, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreatePackageRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, r, "Invalid request body", nil)
		return
	}

	pkg, err := h.service.Create(r.Context(), admin.ID, &req)
	if err != nil {
		h.handleServiceError(w, r, err, "create package")
		return
	}

	utils.ResponseCreated(w, r, pkg)
}

// UpdatePackage handles PUT /api/packages/{id} (admin only)
func (h *PackageHandler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePackageRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, r, "Invalid request body", nil)
		return
	}

	pkg, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "update package")
		return
	}

	utils.ResponseSuccess(w, r, pkg)
}

// DeletePackage handles DELETE /api/packages/{id} (admin only)
func (h *PackageHandler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, r, err, "delete package")
		return
	}

	utils.ResponseMessage(w, r, "Package deleted successfully")
}

func (h *PackageHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	respondServiceError(w, r, h.log, err, operation)
}
