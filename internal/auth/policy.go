package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/junalkadhav/library-management/internal/domain"
	apperrors "github.com/junalkadhav/library-management/pkg/util"
)

// Policy declares, once per operation, the set of roles allowed to perform
// it. Routes reference operations by name so the allow-sets cannot drift
// between call sites.
type Policy map[string][]domain.Role

// Allowed returns the allow-set for an operation. An operation missing from
// the table allows no one.
func (p Policy) Allowed(operation string) []domain.Role {
	return p[operation]
}

// AuthorizeRole checks membership of a resolved role in an allow-set.
func AuthorizeRole(role domain.Role, allowed []domain.Role) error {
	for _, a := range allowed {
		if role == a {
			return nil
		}
	}
	return apperrors.NewForbidden("not authorized")
}

// RequireOperation returns middleware enforcing the policy entry for the
// named operation against the authenticated identity.
func RequireOperation(policy Policy, operation string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := MustIdentity(c)
		if err != nil {
			return err
		}
		if err := AuthorizeRole(identity.Role, policy.Allowed(operation)); err != nil {
			return err
		}
		return c.Next()
	}
}
