package auth

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/backoffice-api/internal/domain"
	"github.com/spec-kit/backoffice-api/internal/repository"
	apperrors "github.com/spec-kit/backoffice-api/pkg/util/errorutil"
)

const accountLocalsKey = "auth_account"

// AccountReader is the slice of the accounts collection the gate needs.
type AccountReader interface {
	Get(ctx context.Context, id string) (*domain.Document[domain.Account], error)
}

// RequireAccount ensures the admitted identity still maps to a stored account.
// It must run after AuthMiddleware.Handle.
func RequireAccount(accounts AccountReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromFiber(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}

		account, err := accounts.Get(c.UserContext(), identity.String())
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.NewForbidden("account not found")
			}
			return apperrors.MapError(err)
		}

		c.Locals(accountLocalsKey, account)
		return c.Next()
	}
}

// AccountFromContext retrieves the account loaded by RequireAccount.
func AccountFromContext(c *fiber.Ctx) (*domain.Document[domain.Account], bool) {
	account, ok := c.Locals(accountLocalsKey).(*domain.Document[domain.Account])
	return account, ok && account != nil
}
