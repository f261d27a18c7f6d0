package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/metrics"
	"travel-booking/pkg/token"
	"travel-booking/pkg/utils"
)

type fakeUsers struct {
	users map[uuid.UUID]*entity.User
	err   error
}

func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[id], nil
}

func newUser(role entity.UserRole) *entity.User {
	u := &entity.User{Email: string(role) + "@test.com", Role: role}
	u.ID = uuid.New()
	return u
}

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := utils.GetUserFromContext(r.Context())
		if ok {
			w.Header().Set("X-User", user.ID.String())
		}
		w.WriteHeader(http.StatusOK)
	})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) utils.ErrorResponse {
	t.Helper()
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthenticate(t *testing.T) {
	maker := token.NewJWTMaker("secret", time.Hour)
	user := newUser(entity.RoleUser)
	users := &fakeUsers{users: map[uuid.UUID]*entity.User{user.ID: user}}

	valid, err := maker.GenerateToken(user.ID, string(user.Role))
	require.NoError(t, err)
	orphan, err := maker.GenerateToken(uuid.New(), "user")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		users      UserFinder
		wantStatus int
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "malformed header", header: "Token " + valid, wantStatus: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "user gone", header: "Bearer " + orphan, wantStatus: http.StatusUnauthorized},
		{name: "store failure", header: "Bearer " + valid, users: &fakeUsers{err: errors.New("db down")}, wantStatus: http.StatusInternalServerError},
		{name: "valid", header: "Bearer " + valid, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder := tt.users
			if finder == nil {
				finder = users
			}
			h := Authenticate(maker, finder, zap.NewNop())(okHandler(t))

			req := httptest.NewRequest(http.MethodGet, "/api/auth/check-auth", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, user.ID.String(), rec.Header().Get("X-User"))
			} else {
				assert.NotEmpty(t, decodeError(t, rec).Error)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name         string
		required     entity.UserRole
		caller       *entity.User
		wantStatus   int
		wantRedirect string
	}{
		{name: "no user in context", required: entity.RoleAdmin, wantStatus: http.StatusUnauthorized},
		{name: "user on admin route", required: entity.RoleAdmin, caller: newUser(entity.RoleUser), wantStatus: http.StatusForbidden, wantRedirect: "/"},
		{name: "admin on user route", required: entity.RoleUser, caller: newUser(entity.RoleAdmin), wantStatus: http.StatusForbidden, wantRedirect: "/admin-dashboard"},
		{name: "unknown role", required: entity.RoleAdmin, caller: newUser(entity.UserRole("root")), wantStatus: http.StatusForbidden, wantRedirect: "/"},
		{name: "admin on admin route", required: entity.RoleAdmin, caller: newUser(entity.RoleAdmin), wantStatus: http.StatusOK},
		{name: "user on user route", required: entity.RoleUser, caller: newUser(entity.RoleUser), wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := RequireRole(tt.required, zap.NewNop())(okHandler(t))

			req := httptest.NewRequest(http.MethodDelete, "/api/packages/1", nil)
			if tt.caller != nil {
				req = req.WithContext(utils.SetUserContext(req.Context(), tt.caller))
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusForbidden {
				body := decodeError(t, rec)
				assert.Equal(t, "Forbidden", body.Error)
				assert.Equal(t, tt.wantRedirect, body.Redirect)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	h := CORS(DefaultCORSOptions([]string{"http://app.test"}))(okHandler(t))

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/packages", nil)
		req.Header.Set("Origin", "http://app.test")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "http://app.test", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("foreign origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/packages", nil)
		req.Header.Set("Origin", "http://evil.test")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	h := limiter.Middleware(zap.NewNop())(okHandler(t))
	hit := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, hit("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, hit("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1:1002"))
	assert.Equal(t, http.StatusOK, hit("10.0.0.2:1000"), "buckets are per ip")

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, hit("10.0.0.1:1003"))
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeError(t, rec).Error)
}

func TestMetricsAndLogger(t *testing.T) {
	m := metrics.New()
	r := chi.NewRouter()
	r.Use(Logger(zap.NewNop()), Metrics(m))
	r.Get("/api/packages/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/packages/abc", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestTotal.WithLabelValues("GET", "/api/packages/{id}", "404")))
}
