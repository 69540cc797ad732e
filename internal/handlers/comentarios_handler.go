package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wendarnation/quimerabackend/internal/dto"
	"github.com/wendarnation/quimerabackend/internal/middleware"
	"github.com/wendarnation/quimerabackend/internal/services"
)

type ComentariosHandler struct {
	comentarios *services.ComentariosService
}

func NewComentariosHandler(comentarios *services.ComentariosService) *ComentariosHandler {
	return &ComentariosHandler{comentarios: comentarios}
}

func mapComentarioError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrComentarioNotFound),
		errors.Is(err, services.ErrZapatillaNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, services.ErrComentarioAjeno):
		return forbidden(c, err.Error())
	default:
		return internalError(c)
	}
}

func (h *ComentariosHandler) Create(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	var req dto.CreateComentarioRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Texto == "" {
		return badRequest(c, "texto is required")
	}

	comentario, err := h.comentarios.Create(caller.ID, &req)
	if err != nil {
		return mapComentarioError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comentario)
}

func (h *ComentariosHandler) FindAll(c *fiber.Ctx) error {
	comentarios, err := h.comentarios.FindAll()
	if err != nil {
		return internalError(c)
	}
	return c.JSON(comentarios)
}

func (h *ComentariosHandler) FindByZapatilla(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	comentarios, err := h.comentarios.FindByZapatilla(id)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(comentarios)
}

func (h *ComentariosHandler) FindOne(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	comentario, err := h.comentarios.FindOne(id)
	if err != nil {
		return mapComentarioError(c, err)
	}
	return c.JSON(comentario)
}

func (h *ComentariosHandler) Update(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	var req dto.UpdateComentarioRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Texto == "" {
		return badRequest(c, "texto is required")
	}

	comentario, err := h.comentarios.Update(id, caller.ID, &req)
	if err != nil {
		return mapComentarioError(c, err)
	}
	return c.JSON(comentario)
}

func (h *ComentariosHandler) Remove(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	comentario, err := h.comentarios.Remove(id, caller.ID)
	if err != nil {
		return mapComentarioError(c, err)
	}
	return c.JSON(comentario)
}
