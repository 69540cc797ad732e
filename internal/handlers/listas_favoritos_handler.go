package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wendarnation/quimerabackend/internal/dto"
	"github.com/wendarnation/quimerabackend/internal/middleware"
	"github.com/wendarnation/quimerabackend/internal/services"
)

type ListasFavoritosHandler struct {
	listas *services.ListasFavoritosService
}

func NewListasFavoritosHandler(listas *services.ListasFavoritosService) *ListasFavoritosHandler {
	return &ListasFavoritosHandler{listas: listas}
}

func mapListaError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrListaNotFound),
		errors.Is(err, services.ErrZapatillaNotFound),
		errors.Is(err, services.ErrZapatillaNoEstaEnLista):
		return notFound(c, err.Error())
	case errors.Is(err, services.ErrListaAjena),
		errors.Is(err, services.ErrListaPredeterminada):
		return forbidden(c, err.Error())
	case errors.Is(err, services.ErrPredeterminadaExiste),
		errors.Is(err, services.ErrZapatillaYaEnLista):
		return conflict(c, err.Error())
	default:
		return internalError(c)
	}
}

func (h *ListasFavoritosHandler) Create(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	var req dto.CreateListaFavoritosRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Nombre == "" {
		return badRequest(c, "nombre is required")
	}

	lista, err := h.listas.Create(caller.ID, &req)
	if err != nil {
		return mapListaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lista)
}

func (h *ListasFavoritosHandler) FindAll(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	listas, err := h.listas.FindAll(caller.ID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(listas)
}

func (h *ListasFavoritosHandler) FindOne(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	lista, err := h.listas.FindOne(id, caller.ID)
	if err != nil {
		return mapListaError(c, err)
	}
	return c.JSON(lista)
}

func (h *ListasFavoritosHandler) Update(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	var req dto.UpdateListaFavoritosRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	lista, err := h.listas.Update(id, caller.ID, &req)
	if err != nil {
		return mapListaError(c, err)
	}
	return c.JSON(lista)
}

func (h *ListasFavoritosHandler) Remove(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	lista, err := h.listas.Remove(id, caller.ID)
	if err != nil {
		return mapListaError(c, err)
	}
	return c.JSON(lista)
}

func (h *ListasFavoritosHandler) AddZapatilla(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	var req dto.AddZapatillaListaRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	entrada, err := h.listas.AddZapatilla(id, caller.ID, &req)
	if err != nil {
		return mapListaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entrada)
}

func (h *ListasFavoritosHandler) RemoveZapatilla(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	zapatillaID, ok := parseUUIDParam(c, "zapatillaId")
	if !ok {
		return nil
	}

	if err := h.listas.RemoveZapatilla(id, zapatillaID, caller.ID); err != nil {
		return mapListaError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
