package dto

import (
	"time"

	"github.com/spec-kit/admission-service/internal/domain"
)

// Password bounds in bytes; bcrypt ignores input past 72 bytes.
const (
	MinPasswordBytes = 6
	MaxPasswordBytes = 72
)

// RegisterRequest payload for new accounts. Any role sent by the client is
// ignored.
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks field constraints.
func (r RegisterRequest) Validate() error {
	errs := fieldErrors{}
	errs.length("full_name", r.FullName, 3, 120)
	errs.email("email", r.Email)
	switch {
	case r.Password == "":
		errs["password"] = "is required"
	case len(r.Password) < MinPasswordBytes:
		errs["password"] = "must be at least 6 characters"
	case len(r.Password) > MaxPasswordBytes:
		errs["password"] = "must be at most 72 bytes"
	}
	return errs.err()
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate only checks presence so malformed input and wrong credentials
// are not distinguishable beyond a missing field.
func (r LoginRequest) Validate() error {
	errs := fieldErrors{}
	if r.Email == "" {
		errs["email"] = "is required"
	}
	if r.Password == "" {
		errs["password"] = "is required"
	}
	return errs.err()
}

// AccountResponse is the public view of an account.
type AccountResponse struct {
	ID       string      `json:"id"`
	FullName string      `json:"full_name"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
}

// NewAccountResponse maps a domain account.
func NewAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{ID: a.ID, FullName: a.FullName, Email: a.Email, Role: a.Role}
}

// TokenResponse standard response for login.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// NewTokenResponse maps a session.
func NewTokenResponse(s *domain.Session) TokenResponse {
	return TokenResponse{AccessToken: s.AccessToken, TokenType: s.TokenType, ExpiresAt: s.ExpiresAt}
}
