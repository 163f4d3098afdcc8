package domain

import "time"

// Role is the single authorization attribute carried by a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// MaxNicknameLength bounds User.Nickname in characters.
const MaxNicknameLength = 20

type User struct {
	ID           int64
	Nickname     string // unique
	Email        string // unique, used to log in
	PasswordHash string // bcrypt encoded
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Credentials are the email and password decoded from a Basic header. They
// are never persisted.
type Credentials struct {
	Email    string
	Password string
}
