package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admission-service/internal/domain"
	apperrors "github.com/spec-kit/admission-service/pkg/util/errorutil"
)

// RequireRole admits accounts holding one of the allowed roles. It must run
// after AuthMiddleware.Handle; a known account with the wrong role gets
// FORBIDDEN, never UNAUTHENTICATED.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		account, ok := CurrentAccount(c)
		if !ok {
			return apperrors.NewUnauthenticated(MsgNotAuthenticated)
		}
		if !account.HasRole(allowed...) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAdmin is RequireRole(domain.RoleAdmin).
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}
