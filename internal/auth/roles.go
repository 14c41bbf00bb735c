package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// RoleResolver resolves role names to role records. The role cache
// implements this so gates do not hit the store on every request.
type RoleResolver interface {
	ResolveByName(ctx context.Context, name string) (*domain.Role, error)
}

// RequireAdmin rejects callers whose role is not the seeded Admin role.
// A missing Admin role is a deployment fault, not a caller fault.
func RequireAdmin(roles RoleResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return errorutil.NewUnauthorized("authentication required")
		}

		admin, err := roles.ResolveByName(c.Context(), domain.RoleAdmin)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return errorutil.NewInternalError(errors.New("admin role not seeded"))
			}
			return errorutil.MapError(err)
		}

		if principal.User.RoleID != admin.ID {
			return errorutil.NewForbidden("only Admin users can perform this action")
		}
		return c.Next()
	}
}

// RequireRole gates on a named role. With exclude=false the caller must hold
// the role; with exclude=true callers holding the role are rejected (used to
// keep Customers off the assignment endpoint).
func RequireRole(roles RoleResolver, roleName string, exclude bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return errorutil.NewUnauthorized("authentication required")
		}

		role, err := roles.ResolveByName(c.Context(), roleName)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// An unknown role excludes nobody and admits nobody.
				if exclude {
					return c.Next()
				}
				return errorutil.NewForbidden(fmt.Sprintf("only %s users can perform this action", roleName))
			}
			return errorutil.MapError(err)
		}

		if exclude && principal.User.RoleID == role.ID {
			return errorutil.NewForbidden(fmt.Sprintf("%s users cannot perform this action", roleName))
		}
		if !exclude && principal.User.RoleID != role.ID {
			return errorutil.NewForbidden(fmt.Sprintf("only %s users can perform this action", roleName))
		}
		return c.Next()
	}
}
