package adaptor

import (
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, r, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Signup(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "signup")
		return
	}

	utils.ResponseCreated(w, r, resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, r, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "login")
		return
	}

	utils.ResponseSuccess(w, r, resp)
}

// AdminLogin handles POST /api/auth/admin/login
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, r, "Invalid request body", nil)
		return
	}

	resp, err := h.service.AdminLogin(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "admin login")
		return
	}

	utils.ResponseSuccess(w, r, resp)
}

// GoogleLogin handles POST /api/auth/google
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req request.GoogleLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, r, "Invalid request body", nil)
		return
	}

	resp, err := h.service.LoginWithGoogle(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "google login")
		return
	}

	utils.ResponseSuccess(w, r, resp)
}

// CheckAuth handles GET /api/auth/check-auth (protected)
func (h *AuthHandler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	tokenStr, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, r, "Authentication required")
		return
	}

	user, err := h.service.CheckAuth(r.Context(), tokenStr)
	if err != nil {
		h.handleServiceError(w, r, err, "check auth")
		return
	}

	utils.ResponseSuccess(w, r, response.CheckAuthResponse{Authenticated: true, User: *user})
}

func (h *AuthHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	respondServiceError(w, r, h.log, err, operation)
}
