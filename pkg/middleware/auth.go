package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/token"
	"travel-booking/pkg/utils"
)

// UserFinder resolves the token subject to a stored user.
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

// Authenticate middleware untuk validasi bearer token JWT
func Authenticate(tokens token.Maker, users UserFinder, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, r, "Missing authorization token")
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.ResponseUnauthorized(w, r, "Invalid token format. Use: Bearer <token>")
				return
			}

			tokenStr := parts[1]

			claims, err := tokens.ParseToken(tokenStr)
			if err != nil {
				logger.Debug("Rejected bearer token", zap.Error(err))
				utils.ResponseUnauthorized(w, r, "Invalid or expired token")
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				utils.ResponseUnauthorized(w, r, "Invalid or expired token")
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Failed to load token user",
					zap.String("user_id", userID.String()),
					zap.Error(err))
				utils.ResponseInternalError(w, r)
				return
			}

			if user == nil {
				logger.Warn("Token references missing user", zap.String("user_id", userID.String()))
				utils.ResponseUnauthorized(w, r, "User no longer exists")
				return
			}

			// Set context dengan user DAN token
			ctx := utils.SetUserContext(r.Context(), user)
			ctx = utils.SetTokenContext(ctx, tokenStr)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole - middleware cek role, dipasang setelah Authenticate
func RequireRole(role entity.UserRole, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := utils.GetUserFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, r, "Authentication required")
				return
			}

			if user.Role == role && role.Valid() {
				next.ServeHTTP(w, r)
				return
			}

			logger.Warn("Role check: access denied",
				zap.String("user_id", user.ID.String()),
				zap.String("role", string(user.Role)),
				zap.String("required", string(role)),
				zap.String("path", r.URL.Path))

			utils.ResponseForbidden(w, r, "Forbidden", RedirectFor(user.Role))
		})
	}
}

// RedirectFor is the client route a caller with role belongs on.
func RedirectFor(role entity.UserRole) string {
	switch role {
	case entity.RoleAdmin:
		return "/admin-dashboard"
	case entity.RoleUser:
		return "/"
	default:
		return "/"
	}
}
