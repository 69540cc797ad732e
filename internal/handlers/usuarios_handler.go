package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wendarnation/quimerabackend/internal/dto"
	"github.com/wendarnation/quimerabackend/internal/middleware"
	"github.com/wendarnation/quimerabackend/internal/services"
)

type UsuariosHandler struct {
	usuarios *services.UsuariosService
}

func NewUsuariosHandler(usuarios *services.UsuariosService) *UsuariosHandler {
	return &UsuariosHandler{usuarios: usuarios}
}

func mapUsuarioError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUsuarioNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrNicknameTaken),
		errors.Is(err, services.ErrUsuarioDuplicado):
		return conflict(c, err.Error())
	case errors.Is(err, services.ErrEmailRequired):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

// Create is the admin path; regular accounts come in through token sync.
func (h *UsuariosHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUsuarioRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Auth0ID == "" {
		return badRequest(c, "email and auth0_id are required")
	}

	user, err := h.usuarios.Create(&req)
	if err != nil {
		return mapUsuarioError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// FindAll returns every user except the caller.
func (h *UsuariosHandler) FindAll(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	users, err := h.usuarios.FindAllExcept(caller.ID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(users)
}

func (h *UsuariosHandler) Profile(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	user, err := h.usuarios.FindOne(caller.ID)
	if err != nil {
		return mapUsuarioError(c, err)
	}
	return c.JSON(user)
}

func (h *UsuariosHandler) ProfileStatus(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	user, err := h.usuarios.FindOne(caller.ID)
	if err != nil {
		return mapUsuarioError(c, err)
	}
	return c.JSON(dto.ProfileStatusResponse{
		ProfileComplete: user.PerfilCompleto(),
		MissingFields: dto.ProfileMissingFields{
			NombreCompleto: user.NombreCompleto == nil || *user.NombreCompleto == "",
			Nickname:       user.Nickname == nil || *user.Nickname == "",
		},
	})
}

func (h *UsuariosHandler) UpdateProfile(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	var req dto.UpdateUsuarioRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	// The profile route never changes privileges.
	req.Rol = dto.OptionalString{}

	user, err := h.usuarios.Update(c.Context(), caller.ID, &req)
	if err != nil {
		return mapUsuarioError(c, err)
	}
	return c.JSON(user)
}

func (h *UsuariosHandler) DeleteProfile(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	user, err := h.usuarios.Remove(c.Context(), caller.ID)
	if err != nil {
		return mapUsuarioError(c, err)
	}
	return c.JSON(dto.RemoveUsuarioResponse{
		Success: true,
		Message: "Account deleted",
		User:    user,
	})
}

// CheckAdminRole is an unauthenticated lookup by Auth0 subject; it
// leaks only the role, never the profile.
func (h *UsuariosHandler) CheckAdminRole(c *fiber.Ctx) error {
	auth0ID := c.Params("auth0Id")
	user, err := h.usuarios.FindByAuth0ID(auth0ID)
	if err != nil {
		if errors.Is(err, services.ErrUsuarioNotFound) {
			return c.JSON(dto.CheckAdminResponse{IsAdmin: false, Rol: ""})
		}
		return internalError(c)
	}
	return c.JSON(dto.CheckAdminResponse{
		IsAdmin: user.Rol == "admin",
		Rol:     user.Rol,
	})
}

func (h *UsuariosHandler) ChangeRole(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	var req dto.ChangeRolRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Rol == "" {
		return badRequest(c, "rol is required")
	}

	user, err := h.usuarios.ChangeRole(c.Context(), id, req.Rol)
	if err != nil {
		return mapUsuarioError(c, err)
	}
	return c.JSON(user)
}

func (h *UsuariosHandler) FindOne(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	user, err := h.usuarios.FindOne(id)
	if err != nil {
		return mapUsuarioError(c, err)
	}
	return c.JSON(user)
}

func (h *UsuariosHandler) Update(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	var req dto.UpdateUsuarioRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.usuarios.Update(c.Context(), id, &req)
	if err != nil {
		return mapUsuarioError(c, err)
	}
	return c.JSON(user)
}

func (h *UsuariosHandler) Remove(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	user, err := h.usuarios.Remove(c.Context(), id)
	if err != nil {
		return mapUsuarioError(c, err)
	}
	return c.JSON(dto.RemoveUsuarioResponse{
		Success: true,
		Message: "Usuario deleted",
		User:    user,
	})
}
