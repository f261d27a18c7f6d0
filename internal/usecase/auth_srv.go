package usecase

import (
	"context"
	"errors"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/google"
	"travel-booking/pkg/token"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const msgInvalidCredentials = "Invalid credentials"

type AuthService interface {
	Signup(ctx context.Context, req *request.SignupRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	AdminLogin(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	LoginWithGoogle(ctx context.Context, req *request.GoogleLoginRequest) (*response.AuthResponse, error)
	CheckAuth(ctx context.Context, tokenStr string) (*response.UserResponse, error)

	// CreateAdmin creates an admin account or promotes an existing one.
	CreateAdmin(ctx context.Context, req *request.CreateAdminRequest) (*response.UserResponse, error)
}

type authService struct {
	users  repository.UserRepository
	tokens token.Maker
	google google.Verifier
	now    clock
	log    *zap.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens token.Maker,
	verifier google.Verifier,
	log *zap.Logger,
) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		google: verifier,
		now:    utcNow,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.AuthResponse, error) {
	// 1. Validasi input
	req.Email = utils.NormalizeEmail(req.Email)
	if err := utils.Validate(req); err != nil {
		return nil, err
	}
	email := req.Email

	// 2. Cek email sudah terdaftar
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, utils.NewConflictError("Email already registered")
	}

	// 3. Hash password
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := s.newUser(email, req.Name, entity.RoleUser)
	user.PasswordHash = &hashed

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.NewConflictError("Email already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User signed up", zap.String("user_id", user.ID.String()))

	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	user, err := s.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))
	return s.issue(user)
}

func (s *authService) AdminLogin(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	user, err := s.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}

	if user.Role != entity.RoleAdmin {
		s.log.Warn("Non-admin tried admin login", zap.String("user_id", user.ID.String()))
		return nil, utils.NewForbiddenError("Access denied: admins only", "/")
	}

	s.log.Info("Admin logged in", zap.String("user_id", user.ID.String()))
	return s.issue(user)
}

func (s *authService) LoginWithGoogle(ctx context.Context, req *request.GoogleLoginRequest) (*response.AuthResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	profile, err := s.google.Verify(ctx, req.Credential)
	if err != nil {
		s.log.Warn("Google credential rejected", zap.Error(err))
		if errors.Is(err, google.ErrNotConfigured) {
			return nil, utils.NewUnauthorizedError(google.ErrNotConfigured.Error())
		}
		return nil, utils.NewUnauthorizedError("Invalid Google credential")
	}

	email := utils.NormalizeEmail(profile.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find google user: %w", err)
	}

	if user == nil {
		user = s.newUser(email, profile.Name, entity.RoleUser)
		user.ProfilePicture = profile.Picture

		err = s.users.Create(ctx, user)
		if errors.Is(err, repository.ErrDuplicate) {
			// concurrent first login with the same account
			user, err = s.users.FindByEmail(ctx, email)
			if err == nil && user == nil {
				err = fmt.Errorf("google user %s vanished", email)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("create google user: %w", err)
		}
		s.log.Info("User created from Google login", zap.String("user_id", user.ID.String()))
		return s.issue(user)
	}

	if fillProfile(user, profile) {
		user.UpdatedAt = s.now()
		if err := s.users.Update(ctx, user); err != nil {
			s.log.Warn("Failed to fill profile from Google", zap.Error(err), zap.String("user_id", user.ID.String()))
		}
	}

	s.log.Info("User logged in with Google", zap.String("user_id", user.ID.String()))
	return s.issue(user)
}

func (s *authService) CheckAuth(ctx context.Context, tokenStr string) (*response.UserResponse, error) {
	claims, err := s.tokens.ParseToken(tokenStr)
	if err != nil {
		return nil, utils.NewUnauthorizedError("Invalid or expired token")
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, utils.NewUnauthorizedError("Invalid or expired token")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", userID, err)
	}
	if user == nil {
		return nil, utils.NewUnauthorizedError("User no longer exists")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) CreateAdmin(ctx context.Context, req *request.CreateAdminRequest) (*response.UserResponse, error) {
	req.Email = utils.NormalizeEmail(req.Email)
	if err := utils.Validate(req); err != nil {
		return nil, err
	}
	email := req.Email

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}

	if user != nil {
		user.Role = entity.RoleAdmin
		user.PasswordHash = &hashed
		if req.Name != "" {
			user.Name = req.Name
		}
		user.UpdatedAt = s.now()
		if err := s.users.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("promote user %s: %w", user.ID, err)
		}
		s.log.Info("User promoted to admin", zap.String("user_id", user.ID.String()))
	} else {
		user = s.newUser(email, req.Name, entity.RoleAdmin)
		user.PasswordHash = &hashed
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create admin: %w", err)
		}
		s.log.Info("Admin created", zap.String("user_id", user.ID.String()))
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

// authenticate gives one answer for unknown email, Google-only account and wrong password.
func (s *authService) authenticate(ctx context.Context, req *request.LoginRequest) (*entity.User, error) {
	req.Email = utils.NormalizeEmail(req.Email)
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if user == nil {
		s.log.Warn("Login for unknown email")
		return nil, utils.NewUnauthorizedError(msgInvalidCredentials)
	}

	if !user.HasPassword() || !utils.CheckPasswordHash(req.Password, *user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, utils.NewUnauthorizedError(msgInvalidCredentials)
	}

	return user, nil
}

func (s *authService) issue(user *entity.User) (*response.AuthResponse, error) {
	tokenStr, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("generate token: %w", err)
	}

	resp := response.AuthToResponse(user, tokenStr)
	return &resp, nil
}

func (s *authService) newUser(email, name string, role entity.UserRole) *entity.User {
	now := s.now()
	return &entity.User{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email: email,
		Role:  role,
		Name:  name,
	}
}

// fillProfile copies Google profile fields into blanks; reports whether anything changed.
func fillProfile(user *entity.User, profile *google.Profile) bool {
	changed := false
	if user.Name == "" && profile.Name != "" {
		user.Name = profile.Name
		changed = true
	}
	if user.ProfilePicture == "" && profile.Picture != "" {
		user.ProfilePicture = profile.Picture
		changed = true
	}
	return changed
}
