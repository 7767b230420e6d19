package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/junalkadhav/library-management/internal/domain"
	apperrors "github.com/junalkadhav/library-management/pkg/util"
)

const identityKey = "auth_identity"

// Middleware authenticates requests through an IdentityResolver and stores
// the resolved identity in request-scoped state. Downstream handlers read it
// from there; nothing identity-related ever lives in process-global state.
type Middleware struct {
	resolver IdentityResolver
}

// NewMiddleware constructs middleware over the given resolver.
func NewMiddleware(resolver IdentityResolver) *Middleware {
	return &Middleware{resolver: resolver}
}

// Handle enforces authentication for protected routes. A failed resolution
// short-circuits the request; there is no retry.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	identity, err := m.resolver.Resolve(c.UserContext(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}
	c.Locals(identityKey, identity)
	return c.Next()
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return domain.Identity{}, false
	}
	identity, ok := val.(domain.Identity)
	return identity, ok
}

// MustIdentity returns the authenticated caller or an unauthorized error for
// routes that are always behind Handle.
func MustIdentity(c *fiber.Ctx) (domain.Identity, error) {
	identity, ok := IdentityFromContext(c)
	if !ok {
		return domain.Identity{}, apperrors.NewUnauthorized("not authenticated")
	}
	return identity, nil
}
