package model

import "time"

// Role values stored in users.role and carried in the JWT "role" claim.
// Operators manage hotels they own and advance booking status; users browse,
// book and keep favorites.
const (
	RoleUser     = "user"
	RoleOperator = "operator"
)

// ValidRole reports whether r is a known role name.
func ValidRole(r string) bool {
	return r == RoleUser || r == RoleOperator
}

// RoleHome returns the navigation target an authenticated session of the
// given role should land on. Unknown roles fall back to the user home.
func RoleHome(role string) string {
	if role == RoleOperator {
		return "/operator"
	}
	return "/"
}

// User mirrors the `users` table. PasswordHash holds a bcrypt digest and is
// never serialized.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// RefreshToken models an entry in the `refresh_tokens` table. The plain
// token is not stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
