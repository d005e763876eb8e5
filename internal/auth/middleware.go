package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/backoffice-api/pkg/util/errorutil"
)

var (
	// ErrMissingCredential means no usable "Bearer <token>" header was supplied.
	ErrMissingCredential = errors.New("missing bearer credential")
	// ErrInvalidCredential means a bearer token was supplied but failed verification.
	ErrInvalidCredential = errors.New("invalid bearer credential")
)

// AuthMiddleware gates protected routes on a valid bearer token.
type AuthMiddleware struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, logger: logger}
}

// Authenticate resolves an Authorization header value to an identity.
func (m *AuthMiddleware) Authenticate(authHeader string) (Identity, error) {
	token, ok := bearerToken(authHeader)
	if !ok {
		return "", ErrMissingCredential
	}
	identity, err := m.tokens.Verify(token)
	if err != nil {
		return "", ErrInvalidCredential
	}
	return identity, nil
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	identity, err := m.Authenticate(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		}
		if errors.Is(err, ErrMissingCredential) {
			m.logger.Debug("request rejected: missing credential", fields...)
			return apperrors.NewUnauthorized("authentication required")
		}
		m.logger.Warn("request rejected: invalid credential", fields...)
		return apperrors.NewForbidden("invalid or expired token")
	}

	c.Locals(identityLocalsKey, identity)
	c.SetUserContext(WithIdentity(c.UserContext(), identity))
	return c.Next()
}

// bearerToken extracts the token from a "Bearer <token>" header value.
func bearerToken(authHeader string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(authHeader), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
