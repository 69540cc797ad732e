package dto

import "github.com/google/uuid"

type CreateTiendaRequest struct {
	Nombre string `json:"nombre"`
	URL    string `json:"url"`
	Activa *bool  `json:"activa"`
}

type UpdateTiendaRequest struct {
	Nombre OptionalString `json:"nombre"`
	URL    OptionalString `json:"url"`
	Activa *bool          `json:"activa"`
}

type CreateZapatillaTiendaRequest struct {
	ZapatillaID  uuid.UUID `json:"zapatilla_id"`
	TiendaID     uuid.UUID `json:"tienda_id"`
	ModeloTienda string    `json:"modelo_tienda"`
	Precio       float64   `json:"precio"`
	Disponible   *bool     `json:"disponible"`
	URLProducto  string    `json:"url_producto"`
}

type UpdateZapatillaTiendaRequest struct {
	ModeloTienda OptionalString `json:"modelo_tienda"`
	Precio       *float64       `json:"precio"`
	Disponible   *bool          `json:"disponible"`
	URLProducto  OptionalString `json:"url_producto"`
}

type CreateTallaRequest struct {
	ZapatillaTiendaID uuid.UUID `json:"zapatilla_tienda_id"`
	Talla             string    `json:"talla"`
	Disponible        *bool     `json:"disponible"`
}

type UpdateTallaRequest struct {
	Talla      OptionalString `json:"talla"`
	Disponible *bool          `json:"disponible"`
}

type CreateListaFavoritosRequest struct {
	Nombre         string `json:"nombre"`
	Predeterminada bool   `json:"predeterminada"`
}

type UpdateListaFavoritosRequest struct {
	Nombre         OptionalString `json:"nombre"`
	Predeterminada *bool          `json:"predeterminada"`
}

type AddZapatillaListaRequest struct {
	ZapatillaID uuid.UUID `json:"zapatilla_id"`
}

type CreateComentarioRequest struct {
	ZapatillaID uuid.UUID `json:"zapatilla_id"`
	Texto       string    `json:"texto"`
}

type UpdateComentarioRequest struct {
	Texto string `json:"texto"`
}

type CreateValoracionRequest struct {
	ZapatillaID uuid.UUID `json:"zapatilla_id"`
	Puntuacion  int       `json:"puntuacion"`
}

type UpdateValoracionRequest struct {
	Puntuacion int `json:"puntuacion"`
}

type AverageRatingResponse struct {
	ZapatillaID uuid.UUID `json:"zapatilla_id"`
	Average     float64   `json:"average"`
	Count       int64     `json:"count"`
}
