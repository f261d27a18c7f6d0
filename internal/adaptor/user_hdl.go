package adaptor

import (
	"errors"
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

const defaultMaxUpload = 5 << 20

type UserHandler struct {
	service   usecase.UserService
	maxUpload int64
	log       *zap.Logger
}

func NewUserHandler(service usecase.UserService, maxUpload int64, log *zap.Logger) *UserHandler {
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}
	return &UserHandler{
		service:   service,
		maxUpload: maxUpload,
		log:       log.With(zap.String("handler", "user")),
	}
}

// GetProfile handles GET /api/users/profile and /api/users/me
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(r.Context(), user.ID)
	if err != nil {
		h.handleServiceError(w, r, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, r, profile)
}

// UpdateProfile handles PUT /api/users/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, r, "Invalid request body", nil)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), user.ID, &req)
	if err != nil {
		h.handleServiceError(w, r, err, "update profile")
		return
	}

	utils.ResponseSuccess(w, r, profile)
}

// UploadProfilePicture handles POST /api/users/profile-picture (multipart, field "file")
func (h *UserHandler) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	// multipart overhead on top of the file itself
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1<<20)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ResponseTooLarge(w, r, "File too large")
			return
		}
		utils.ResponseBadRequest(w, r, "Invalid multipart form", nil)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.ResponseBadRequest(w, r, "No file uploaded", nil)
		return
	}
	defer file.Close()

	if header.Size > h.maxUpload {
		utils.ResponseTooLarge(w, r, "File too large")
		return
	}

	profile, err := h.service.UploadProfilePicture(r.Context(), user.ID, file)
	if err != nil {
		h.handleServiceError(w, r, err, "upload profile picture")
		return
	}

	utils.ResponseSuccess(w, r, profile)
}

func (h *UserHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	respondServiceError(w, r, h.log, err, operation)
}
