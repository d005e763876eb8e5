package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrEmptyIdentity is returned when a subject is blank.
var ErrEmptyIdentity = errors.New("identity must not be empty")

// Identity is the subject asserted by a verified token.
type Identity string

// NewIdentity validates a subject string.
func NewIdentity(subject string) (Identity, error) {
	if strings.TrimSpace(subject) == "" {
		return "", ErrEmptyIdentity
	}
	return Identity(subject), nil
}

func (i Identity) String() string {
	return string(i)
}

type contextKey string

const (
	identityContextKey contextKey = "backoffice-api/auth:identity"
	identityLocalsKey             = "auth_identity"
)

// WithIdentity stores a verified identity in ctx.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext returns the identity admitted by the gate, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(Identity)
	return identity, ok && identity != ""
}

// IdentityFromFiber retrieves the identity attached to the current request.
func IdentityFromFiber(c *fiber.Ctx) (Identity, bool) {
	identity, ok := c.Locals(identityLocalsKey).(Identity)
	return identity, ok && identity != ""
}
