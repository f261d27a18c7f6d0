package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type CheckAuthResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          UserResponse `json:"user"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID             string          `json:"id"`
	Email          string          `json:"email"`
	Role           entity.UserRole `json:"role"`
	Name           string          `json:"name"`
	Address        string          `json:"address"`
	ProfilePicture string          `json:"profilePicture"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:             user.ID.String(),
		Email:          user.Email,
		Role:           user.Role,
		Name:           user.Name,
		Address:        user.Address,
		ProfilePicture: user.ProfilePicture,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

func AuthToResponse(user *entity.User, token string) AuthResponse {
	return AuthResponse{
		Token: token,
		User:  UserToResponse(user),
	}
}
