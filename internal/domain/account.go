package domain

import (
	"strings"
	"time"
)

// Role is the coarse authorization tier of an account.
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleApplicant || r == RoleAdmin
}

// Account is a persisted identity that can authenticate.
type Account struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string `json:"-"`
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the account holds one of roles.
func (a *Account) HasRole(roles ...Role) bool {
	if a == nil {
		return false
	}
	for _, role := range roles {
		if a.Role == role {
			return true
		}
	}
	return false
}

// NormalizeEmail trims and lower-cases an email so lookups and the unique
// index agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
