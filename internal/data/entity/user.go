package entity

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

type User struct {
	BaseNoDelete
	Email          string   `db:"email"`
	PasswordHash   *string  `db:"password"` // nil for Google-only accounts
	Role           UserRole `db:"role"`
	Name           string   `db:"name"`
	Address        string   `db:"address"`
	ProfilePicture string   `db:"profile_picture"`
}

func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
