package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/wendarnation/quimerabackend/internal/dto"
)

// RequireAccess passes when the caller's role is one of roles OR the
// caller holds at least one of permissions. With both lists empty any
// authenticated caller passes. There is no role hierarchy; admin must
// be listed explicitly where it should pass.
func RequireAccess(roles, permissions []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized",
			})
		}

		if len(roles) == 0 && len(permissions) == 0 {
			return c.Next()
		}

		for _, r := range roles {
			if user.Rol == r {
				return c.Next()
			}
		}
		for _, p := range permissions {
			for _, held := range user.Permissions {
				if held == p {
					return c.Next()
				}
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error:   true,
			Message: deniedMessage(roles, permissions),
		})
	}
}

func deniedMessage(roles, permissions []string) string {
	var parts []string
	if len(roles) > 0 {
		parts = append(parts, "role: "+strings.Join(roles, ", "))
	}
	if len(permissions) > 0 {
		parts = append(parts, "permission: "+strings.Join(permissions, ", "))
	}
	return "Forbidden: requires " + strings.Join(parts, " or ")
}
