package domain

import (
	"errors"
	"time"
)

// Role is the closed set of roles a user account can hold.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleOfficer     Role = "officer"
	RoleContributor Role = "contributor"
	RoleUser        Role = "user"
)

// IsValid reports whether r is one of the defined roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleOfficer, RoleContributor, RoleUser:
		return true
	}
	return false
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidRole = errors.New("invalid role")
var ErrSelfDeletion = errors.New("cannot delete own account")

// Token verification errors. The transport layer collapses all of them into a
// generic 401 so callers cannot probe token validity.
var ErrTokenExpired = errors.New("token expired")
var ErrTokenMalformed = errors.New("token malformed")
var ErrTokenInvalid = errors.New("token invalid")

// User models a registered account in the platform.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Claims is the verified identity extracted from a bearer token. The embedded
// role is the one the account held when the token was issued; role changes
// take effect on the next issued token.
type Claims struct {
	SubjectID string
	Email     string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}
