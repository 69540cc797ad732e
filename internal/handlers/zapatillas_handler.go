package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/wendarnation/quimerabackend/internal/dto"
	"github.com/wendarnation/quimerabackend/internal/services"
)

type ZapatillasHandler struct {
	zapatillas *services.ZapatillasService
}

func NewZapatillasHandler(zapatillas *services.ZapatillasService) *ZapatillasHandler {
	return &ZapatillasHandler{zapatillas: zapatillas}
}

func (h *ZapatillasHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateZapatillaRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Marca == "" || req.Modelo == "" || req.SKU == "" {
		return badRequest(c, "marca, modelo and sku are required")
	}

	z, err := h.zapatillas.Create(&req)
	if err != nil {
		if errors.Is(err, services.ErrSKUDuplicado) {
			return conflict(c, err.Error())
		}
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(z)
}

func (h *ZapatillasHandler) FindAll(c *fiber.Ctx) error {
	var activa *bool
	if raw := c.Query("activa"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, "Invalid activa")
		}
		activa = &v
	}

	zapatillas, err := h.zapatillas.FindAll(c.Query("marca"), activa)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(zapatillas)
}

// Search handles the free-form entry point; limit comes from the query.
func (h *ZapatillasHandler) Search(c *fiber.Ctx) error {
	return h.search(c, 0)
}

// SearchPaginated returns the fixed-page-size entry points. The two
// frontends consume different page sizes, hence the pair of routes.
func (h *ZapatillasHandler) SearchPaginated(limit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return h.search(c, limit)
	}
}

func (h *ZapatillasHandler) search(c *fiber.Ctx, forcedLimit int) error {
	var f dto.FilterZapatillas
	if err := c.QueryParser(&f); err != nil {
		return badRequest(c, "Invalid query parameters")
	}
	if forcedLimit > 0 {
		f.Limit = forcedLimit
	}

	page, err := h.zapatillas.Search(&f)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(page)
}

func (h *ZapatillasHandler) FindBySku(c *fiber.Ctx) error {
	sku := c.Params("sku")
	if sku == "" {
		return badRequest(c, "sku is required")
	}
	zapatillas, err := h.zapatillas.FindBySku(sku)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(zapatillas)
}

func (h *ZapatillasHandler) FindBySkuExacto(c *fiber.Ctx) error {
	sku := c.Query("sku")
	if sku == "" {
		return badRequest(c, "sku is required")
	}
	z, err := h.zapatillas.FindBySkuExacto(sku)
	if err != nil {
		if errors.Is(err, services.ErrZapatillaNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(z)
}

func (h *ZapatillasHandler) FindOne(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	z, err := h.zapatillas.FindOne(id)
	if err != nil {
		if errors.Is(err, services.ErrZapatillaNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(z)
}

func (h *ZapatillasHandler) Update(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	var req dto.UpdateZapatillaRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	z, err := h.zapatillas.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrZapatillaNotFound):
			return notFound(c, err.Error())
		case errors.Is(err, services.ErrSKUDuplicado):
			return conflict(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(z)
}

func (h *ZapatillasHandler) Remove(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	z, err := h.zapatillas.Remove(id)
	if err != nil {
		if errors.Is(err, services.ErrZapatillaNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(z)
}

func (h *ZapatillasHandler) Tiendas(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	tiendas, err := h.zapatillas.FindTiendas(id)
	if err != nil {
		if errors.Is(err, services.ErrZapatillaNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(tiendas)
}

func (h *ZapatillasHandler) Tallas(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	tallas, err := h.zapatillas.FindTallas(id)
	if err != nil {
		if errors.Is(err, services.ErrZapatillaNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(tallas)
}

func (h *ZapatillasHandler) Valoraciones(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	stats, err := h.zapatillas.FindValoraciones(id)
	if err != nil {
		if errors.Is(err, services.ErrZapatillaNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(stats)
}

func (h *ZapatillasHandler) Comentarios(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}
	comentarios, err := h.zapatillas.FindComentarios(id)
	if err != nil {
		if errors.Is(err, services.ErrZapatillaNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	return c.JSON(comentarios)
}
