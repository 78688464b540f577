package domain

import "time"

// TokenTypeBearer labels tokens returned from login.
const TokenTypeBearer = "bearer"

// Session describes an issued access token. Sessions are never persisted.
type Session struct {
	AccessToken string
	TokenType   string
	AccountID   string
	Role        Role
	IssuedAt    time.Time
	ExpiresAt   time.Time
}
