package entity

import (
	"time"
)

// User is the aggregate root for the account directory.
// PasswordHash holds a bcrypt hash, never the plaintext.
type User struct {
	ID               int
	Username         string
	Email            string
	PasswordHash     string
	Role             Role
	Gender           string
	Age              string
	Location         string
	PreferredColor   string
	PreferredBrand   string
	FavoriteCategory string
	CreatedAt        time.Time
	LastLogin        time.Time // zero until the first login
}

// Profile groups the optional attributes collected at registration.
type Profile struct {
	Gender           string
	Age              string
	Location         string
	PreferredColor   string
	PreferredBrand   string
	FavoriteCategory string
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
