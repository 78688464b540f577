package auth

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/admission-service/internal/config"
)

// AttemptStore persists login attempt counters.
type AttemptStore interface {
	// Increment bumps the counter for key and returns the new value. The
	// window starts with the first increment and is not extended by later ones.
	Increment(ctx context.Context, key string, window time.Duration) (int, error)
	Reset(ctx context.Context, key string) error
}

// LoginThrottle blocks further logins for an email after too many failures.
// Every attempt is counted before credentials are checked and stays counted
// until Success clears it, so concurrent attempts cannot exceed the limit.
// Counters are keyed by the submitted email whether or not an account exists.
// Store errors are logged and the attempt is allowed.
type LoginThrottle struct {
	store       AttemptStore
	maxFailures int
	window      time.Duration
	logger      *zap.Logger
}

// NewLoginThrottle returns nil when throttling is disabled; a nil
// *LoginThrottle allows every attempt.
func NewLoginThrottle(store AttemptStore, cfg config.AuthConfig, logger *zap.Logger) *LoginThrottle {
	if store == nil || cfg.LoginMaxFailures <= 0 {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoginThrottle{
		store:       store,
		maxFailures: cfg.LoginMaxFailures,
		window:      cfg.LoginWindow(),
		logger:      logger,
	}
}

// Allow counts an attempt for email and reports whether it may proceed.
func (t *LoginThrottle) Allow(ctx context.Context, email string) bool {
	if t == nil {
		return true
	}
	count, err := t.store.Increment(ctx, email, t.window)
	if err != nil {
		t.logger.Warn("login throttle unavailable", zap.Error(err))
		return true
	}
	if count == t.maxFailures+1 {
		t.logger.Info("login temporarily blocked", zap.Int("failures", t.maxFailures), zap.Duration("window", t.window))
	}
	return count <= t.maxFailures
}

// Success clears the attempt counter.
func (t *LoginThrottle) Success(ctx context.Context, email string) {
	if t == nil {
		return
	}
	if err := t.store.Reset(ctx, email); err != nil {
		t.logger.Warn("login throttle reset failed", zap.Error(err))
	}
}
