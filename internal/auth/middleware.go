package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/admission-service/internal/domain"
	"github.com/spec-kit/admission-service/internal/repository"
	apperrors "github.com/spec-kit/admission-service/pkg/util/errorutil"
)

const currentAccountKey = "auth_current_account"

// MsgNotAuthenticated is the only message clients see for a rejected identity.
const MsgNotAuthenticated = "not authenticated"

var (
	errMissingHeader = errors.New("missing authorization header")
	errBadScheme     = errors.New("authorization scheme is not bearer")
	errEmptyToken    = errors.New("empty bearer token")
	errInactive      = errors.New("account inactive")
)

// AuthMiddleware validates bearer tokens and loads the calling account.
type AuthMiddleware struct {
	tokens   *TokenManager
	accounts repository.AccountRepository
	logger   *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, accounts repository.AccountRepository, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, accounts: accounts, logger: logger}
}

// Handle enforces authentication for protected routes. Every identity
// failure produces the same response; only store outages differ.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, err := ParseBearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return m.reject(c, err)
	}

	claims, err := m.tokens.Validate(token)
	if err != nil {
		return m.reject(c, err)
	}

	account, err := m.accounts.GetByID(c.UserContext(), claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return m.reject(c, err)
		}
		return apperrors.MapError(err)
	}
	if !account.IsActive {
		return m.reject(c, errInactive)
	}

	c.Locals(currentAccountKey, account)
	return c.Next()
}

func (m *AuthMiddleware) reject(c *fiber.Ctx, reason error) error {
	m.logger.Debug("request not authenticated",
		zap.String("path", c.Path()),
		zap.Error(reason))
	return apperrors.NewUnauthenticated(MsgNotAuthenticated)
}

// CurrentAccount retrieves the account loaded by AuthMiddleware.
func CurrentAccount(c *fiber.Ctx) (*domain.Account, bool) {
	val := c.Locals(currentAccountKey)
	if val == nil {
		return nil, false
	}
	account, ok := val.(*domain.Account)
	return account, ok && account != nil
}

// ParseBearerToken extracts the token from an Authorization header value.
// The scheme is matched case-insensitively.
func ParseBearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingHeader
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", errBadScheme
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errEmptyToken
	}
	return token, nil
}
