package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/wendarnation/quimerabackend/internal/dto"
	"github.com/wendarnation/quimerabackend/internal/services"
)

type TiendasHandler struct {
	tiendas *services.TiendasService
}

func NewTiendasHandler(tiendas *services.TiendasService) *TiendasHandler {
	return &TiendasHandler{tiendas: tiendas}
}

func (h *TiendasHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTiendaRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Nombre == "" {
		return badRequest(c, "nombre is required")
	}

	t, err := h.tiendas.Create(&req)
	if err != nil {
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

func (h *TiendasHandler) FindAll(c *fiber.Ctx) error {
	var activa *bool
	if raw := c.Query("activa"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, "Invalid activa")
		}
		activa = &v
	}

	tiendas, err := h.tiendas.FindAll(activa)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(tiendas)
}

func (h *TiendasHandler) FindOne(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	t, err := h.tiendas.FindOne(id)
	if err != nil {
		if errors.Is(err, services.ErrTiendaNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(t)
}

func (h *TiendasHandler) Update(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	var req dto.UpdateTiendaRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	t, err := h.tiendas.Update(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrTiendaNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(t)
}

func (h *TiendasHandler) Remove(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	t, err := h.tiendas.Remove(id)
	if err != nil {
		if errors.Is(err, services.ErrTiendaNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(t)
}
