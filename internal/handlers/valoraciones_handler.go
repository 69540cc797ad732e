package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wendarnation/quimerabackend/internal/dto"
	"github.com/wendarnation/quimerabackend/internal/middleware"
	"github.com/wendarnation/quimerabackend/internal/services"
)

type ValoracionesHandler struct {
	valoraciones *services.ValoracionesService
}

func NewValoracionesHandler(valoraciones *services.ValoracionesService) *ValoracionesHandler {
	return &ValoracionesHandler{valoraciones: valoraciones}
}

func mapValoracionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValoracionNotFound),
		errors.Is(err, services.ErrZapatillaNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, services.ErrValoracionAjena):
		return forbidden(c, err.Error())
	case errors.Is(err, services.ErrValoracionDuplicada):
		return conflict(c, err.Error())
	case errors.Is(err, services.ErrPuntuacionInvalida):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

func (h *ValoracionesHandler) Create(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	var req dto.CreateValoracionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	v, err := h.valoraciones.Create(caller.ID, &req)
	if err != nil {
		return mapValoracionError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(v)
}

func (h *ValoracionesHandler) FindAll(c *fiber.Ctx) error {
	valoraciones, err := h.valoraciones.FindAll()
	if err != nil {
		return internalError(c)
	}
	return c.JSON(valoraciones)
}

func (h *ValoracionesHandler) FindByZapatilla(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	valoraciones, err := h.valoraciones.FindByZapatilla(id)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(valoraciones)
}

func (h *ValoracionesHandler) Average(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	avg, err := h.valoraciones.Average(id)
	if err != nil {
		return mapValoracionError(c, err)
	}
	return c.JSON(avg)
}

func (h *ValoracionesHandler) FindOne(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	v, err := h.valoraciones.FindOne(id)
	if err != nil {
		return mapValoracionError(c, err)
	}
	return c.JSON(v)
}

func (h *ValoracionesHandler) Update(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	var req dto.UpdateValoracionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	v, err := h.valoraciones.Update(id, caller.ID, &req)
	if err != nil {
		return mapValoracionError(c, err)
	}
	return c.JSON(v)
}

func (h *ValoracionesHandler) Remove(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	v, err := h.valoraciones.Remove(id, caller.ID)
	if err != nil {
		return mapValoracionError(c, err)
	}
	return c.JSON(v)
}
