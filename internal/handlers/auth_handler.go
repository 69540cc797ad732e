package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wendarnation/quimerabackend/internal/dto"
	"github.com/wendarnation/quimerabackend/internal/middleware"
	"github.com/wendarnation/quimerabackend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SyncUser re-runs reconciliation for the caller. The token has already
// been validated and the user row materialized by the middleware; the
// body may carry fresher profile fields from the frontend.
func (h *AuthHandler) SyncUser(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	if caller == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.SyncUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	email := caller.Email
	if req.Email != "" {
		email = req.Email
	}

	user, err := h.authService.FindOrCreateUser(c.Context(), caller.Auth0ID, email, req.NombreCompleto, req.Nickname, caller.Rol)
	if err != nil {
		if errors.Is(err, services.ErrEmailRequired) {
			return badRequest(c, err.Error())
		}
		return internalError(c)
	}

	return c.JSON(dto.SyncUserResponse{
		Success:         true,
		User:            user,
		ProfileComplete: user.PerfilCompleto(),
	})
}
