package model

import (
	"strings"
	"time"
)

type Role string

const (
	RoleStudent    Role = "student"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

// ParseRole accepts the canonical role names plus the "superadmin" spelling
// used by older login forms.
func ParseRole(raw string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "student":
		return RoleStudent, true
	case "admin":
		return RoleAdmin, true
	case "super-admin", "superadmin", "super_admin":
		return RoleSuperAdmin, true
	default:
		return "", false
	}
}

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin || r == RoleSuperAdmin
}

// Principal is an authenticated identity. It is what a session token encodes.
type Principal struct {
	ID       string `json:"id"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
}

// Credential is a stored principal plus its password hash.
type Credential struct {
	Principal
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// SessionClaims is what the token service hands back after verification.
type SessionClaims struct {
	Principal
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IssuedSession is a freshly signed token and its lifetime.
type IssuedSession struct {
	Token     string
	TTL       time.Duration
	Principal Principal
}
