package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wendarnation/quimerabackend/internal/dto"
	"github.com/wendarnation/quimerabackend/internal/services"
)

type ZapatillasTiendaHandler struct {
	listings *services.ZapatillasTiendaService
}

func NewZapatillasTiendaHandler(listings *services.ZapatillasTiendaService) *ZapatillasTiendaHandler {
	return &ZapatillasTiendaHandler{listings: listings}
}

func (h *ZapatillasTiendaHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateZapatillaTiendaRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	zt, err := h.listings.Create(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrZapatillaNotFound),
			errors.Is(err, services.ErrTiendaNotFound):
			return notFound(c, err.Error())
		case errors.Is(err, services.ErrListingDuplicado):
			return conflict(c, err.Error())
		}
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(zt)
}

func (h *ZapatillasTiendaHandler) FindAll(c *fiber.Ctx) error {
	listings, err := h.listings.FindAll()
	if err != nil {
		return internalError(c)
	}
	return c.JSON(listings)
}

func (h *ZapatillasTiendaHandler) FindOne(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	zt, err := h.listings.FindOne(id)
	if err != nil {
		if errors.Is(err, services.ErrListingNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(zt)
}

func (h *ZapatillasTiendaHandler) FindByZapatilla(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	listings, err := h.listings.FindByZapatilla(id)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(listings)
}

func (h *ZapatillasTiendaHandler) FindByTienda(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	listings, err := h.listings.FindByTienda(id)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(listings)
}

func (h *ZapatillasTiendaHandler) Update(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	var req dto.UpdateZapatillaTiendaRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	zt, err := h.listings.Update(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrListingNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(zt)
}

func (h *ZapatillasTiendaHandler) Remove(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	zt, err := h.listings.Remove(id)
	if err != nil {
		if errors.Is(err, services.ErrListingNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(zt)
}
