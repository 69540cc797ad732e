package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wendarnation/quimerabackend/internal/dto"
	"github.com/wendarnation/quimerabackend/internal/services"
)

type TallasHandler struct {
	tallas *services.TallasService
}

func NewTallasHandler(tallas *services.TallasService) *TallasHandler {
	return &TallasHandler{tallas: tallas}
}

func (h *TallasHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTallaRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Talla == "" {
		return badRequest(c, "talla is required")
	}

	t, err := h.tallas.Create(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrListingNotFound):
			return notFound(c, err.Error())
		case errors.Is(err, services.ErrTallaDuplicada):
			return conflict(c, err.Error())
		}
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

func (h *TallasHandler) FindAll(c *fiber.Ctx) error {
	tallas, err := h.tallas.FindAll()
	if err != nil {
		return internalError(c)
	}
	return c.JSON(tallas)
}

func (h *TallasHandler) FindOne(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	t, err := h.tallas.FindOne(id)
	if err != nil {
		if errors.Is(err, services.ErrTallaNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(t)
}

func (h *TallasHandler) FindByZapatillaTienda(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	tallas, err := h.tallas.FindByZapatillaTienda(id)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(tallas)
}

func (h *TallasHandler) Update(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	var req dto.UpdateTallaRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	t, err := h.tallas.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTallaNotFound):
			return notFound(c, err.Error())
		case errors.Is(err, services.ErrTallaDuplicada):
			return conflict(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(t)
}

func (h *TallasHandler) Remove(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	t, err := h.tallas.Remove(id)
	if err != nil {
		if errors.Is(err, services.ErrTallaNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(t)
}
