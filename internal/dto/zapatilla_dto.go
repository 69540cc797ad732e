package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/wendarnation/quimerabackend/internal/models"
)

type CreateZapatillaRequest struct {
	Marca       string `json:"marca"`
	Modelo      string `json:"modelo"`
	SKU         string `json:"sku"`
	Imagen      string `json:"imagen"`
	Descripcion string `json:"descripcion"`
	Categoria   string `json:"categoria"`
	Activa      *bool  `json:"activa"`
}

type UpdateZapatillaRequest struct {
	Marca       OptionalString `json:"marca"`
	Modelo      OptionalString `json:"modelo"`
	SKU         OptionalString `json:"sku"`
	Imagen      OptionalString `json:"imagen"`
	Descripcion OptionalString `json:"descripcion"`
	Categoria   OptionalString `json:"categoria"`
	Activa      *bool          `json:"activa"`
}

// FilterZapatillas is the full search surface of the catalog engine.
// Search is tokenized on whitespace: tokens are ANDed, and each token may
// match any of marca/modelo/sku/descripcion/categoria.
type FilterZapatillas struct {
	Marca     string   `query:"marca"`
	Modelo    string   `query:"modelo"`
	SKU       string   `query:"sku"`
	Categoria string   `query:"categoria"`
	PrecioMin *float64 `query:"precio_min"`
	PrecioMax *float64 `query:"precio_max"`
	Activa    *bool    `query:"activa"`
	Search    string   `query:"search"`
	Page      int      `query:"page"`
	Limit     int      `query:"limit"`
	SortBy    string   `query:"sortBy"`
	SortOrder string   `query:"sortOrder"`
}

// ZapatillaConPrecios enriches a sneaker with aggregates over its
// available listings. All four fields are absent when no listing is
// available, not zero.
type ZapatillaConPrecios struct {
	models.Zapatilla
	PrecioMin          *float64 `json:"precio_min,omitempty"`
	PrecioMax          *float64 `json:"precio_max,omitempty"`
	PrecioPromedio     *float64 `json:"precio_promedio,omitempty"`
	TiendasDisponibles *int     `json:"tiendas_disponibles,omitempty"`
}

type ZapatillasPage struct {
	Data       []ZapatillaConPrecios `json:"data"`
	Pagination Pagination            `json:"pagination"`
}

// TiendaConPrecio flattens a listing into the store plus its offer,
// for GET /zapatillas/:id/tiendas.
type TiendaConPrecio struct {
	models.Tienda
	Precio      float64 `json:"precio"`
	Disponible  bool    `json:"disponible"`
	URLProducto string  `json:"url_producto"`
}

// TallaDetalle flattens a size across listings for GET /zapatillas/:id/tallas.
type TallaDetalle struct {
	ID                 uuid.UUID `json:"id"`
	Talla              string    `json:"talla"`
	Disponible         bool      `json:"disponible"`
	TiendaNombre       string    `json:"tienda_nombre"`
	TiendaID           uuid.UUID `json:"tienda_id"`
	Precio             float64   `json:"precio"`
	FechaActualizacion time.Time `json:"fecha_actualizacion"`
}

type ValoracionesStats struct {
	Total int     `json:"total"`
	Media float64 `json:"media"`
}

type ValoracionesConStats struct {
	Valoraciones []models.Valoracion `json:"valoraciones"`
	Stats        ValoracionesStats   `json:"stats"`
}
