package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/admission-service/internal/auth"
	"github.com/spec-kit/admission-service/internal/domain"
	"github.com/spec-kit/admission-service/internal/events"
	"github.com/spec-kit/admission-service/internal/observability"
	"github.com/spec-kit/admission-service/internal/repository"
	apperrors "github.com/spec-kit/admission-service/pkg/util/errorutil"
)

// MsgInvalidCredentials is returned for every failed login regardless of cause.
const MsgInvalidCredentials = "invalid email or password"

// MsgLoginThrottled is returned while an email is locked out.
const MsgLoginThrottled = "too many failed login attempts, try again later"

// AuthService coordinates registration and login flows.
type AuthService struct {
	accounts   repository.AccountRepository
	hasher     auth.PasswordHasher
	tokens     *auth.TokenManager
	throttle   *auth.LoginThrottle
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	decoyHash  string
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	Accounts   repository.AccountRepository
	Hasher     auth.PasswordHasher
	Tokens     *auth.TokenManager
	Throttle   *auth.LoginThrottle
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewAuthService builds the service. It hashes a random decoy password so
// logins for unknown emails cost the same as logins for known ones.
func NewAuthService(deps AuthDependencies) (*AuthService, error) {
	if deps.Accounts == nil || deps.Hasher == nil || deps.Tokens == nil {
		return nil, errors.New("auth service requires accounts, hasher and tokens")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	dispatcher := deps.Dispatcher
	if dispatcher == nil {
		dispatcher = events.NewInMemoryDispatcher(logger)
	}

	decoy := make([]byte, 16)
	if _, err := rand.Read(decoy); err != nil {
		return nil, err
	}
	decoyHash, err := deps.Hasher.Hash(hex.EncodeToString(decoy))
	if err != nil {
		return nil, err
	}

	return &AuthService{
		accounts:   deps.Accounts,
		hasher:     deps.Hasher,
		tokens:     deps.Tokens,
		throttle:   deps.Throttle,
		dispatcher: dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
		decoyHash:  decoyHash,
	}, nil
}

// Register creates a new applicant-role account. The role is never taken
// from the caller.
func (s *AuthService) Register(ctx context.Context, fullName, email, password string) (*domain.Account, error) {
	fullName = strings.TrimSpace(fullName)
	email = domain.NormalizeEmail(email)

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, errEmailRegistered()
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.MapError(err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	account := &domain.Account{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleApplicant,
		IsActive:     true,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, errEmailRegistered()
		}
		return nil, apperrors.MapError(err)
	}

	s.metrics.RecordRegistration()
	s.logger.Info("account registered", zap.String("account_id", account.ID))
	s.dispatcher.Publish(ctx, events.NewEvent(events.EventAccountRegistered, account.ID, events.AccountRegisteredPayload{
		Email: account.Email,
		Role:  account.Role,
	}))
	return account, nil
}

// Login verifies credentials and issues an access token. Unknown email,
// wrong password and inactive account all yield the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email = domain.NormalizeEmail(email)

	if !s.throttle.Allow(ctx, email) {
		s.metrics.RecordLogin(observability.LoginThrottled)
		return nil, apperrors.NewTooManyRequests(MsgLoginThrottled)
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.MapError(err)
	}

	stored := s.decoyHash
	if account != nil {
		stored = account.PasswordHash
	}
	verified := s.hasher.Verify(password, stored)

	if account == nil || !verified || !account.IsActive {
		s.metrics.RecordLogin(observability.LoginFailed)
		return nil, apperrors.NewUnauthenticated(MsgInvalidCredentials)
	}
	s.throttle.Success(ctx, email)

	token, expiresAt, err := s.tokens.Issue(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.metrics.RecordLogin(observability.LoginSucceeded)

	return &domain.Session{
		AccessToken: token,
		TokenType:   domain.TokenTypeBearer,
		AccountID:   account.ID,
		Role:        account.Role,
		IssuedAt:    expiresAt.Add(-s.tokens.TTL()),
		ExpiresAt:   expiresAt,
	}, nil
}

// SetRole changes an account's role. Only the administrative CLI calls it.
func (s *AuthService) SetRole(ctx context.Context, email string, role domain.Role) (*domain.Account, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": role})
	}
	account, err := s.accounts.UpdateRole(ctx, domain.NormalizeEmail(email), role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("account", map[string]any{"email": email})
		}
		return nil, apperrors.MapError(err)
	}
	s.logger.Info("account role changed", zap.String("account_id", account.ID), zap.String("role", string(role)))
	return account, nil
}

func errEmailRegistered() error {
	return apperrors.NewConflict("email already registered", nil)
}
