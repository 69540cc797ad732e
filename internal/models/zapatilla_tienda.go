package models

import (
	"time"

	"github.com/google/uuid"
)

// ZapatillaTienda is a per-store listing of a sneaker: one row per
// (zapatilla, tienda) pair carrying the store-specific price and stock.
type ZapatillaTienda struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ZapatillaID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_zapatilla_tienda" json:"zapatilla_id"`
	TiendaID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_zapatilla_tienda" json:"tienda_id"`
	ModeloTienda       string    `gorm:"size:255" json:"modelo_tienda"`
	Precio             float64   `gorm:"not null" json:"precio"`
	Disponible         bool      `gorm:"default:true;index" json:"disponible"`
	URLProducto        string    `gorm:"size:500" json:"url_producto"`
	FechaActualizacion time.Time `gorm:"autoUpdateTime" json:"fecha_actualizacion"`

	Zapatilla *Zapatilla `gorm:"foreignKey:ZapatillaID" json:"zapatilla,omitempty"`
	Tienda    *Tienda    `gorm:"foreignKey:TiendaID" json:"tienda,omitempty"`
	Tallas    []Talla    `gorm:"foreignKey:ZapatillaTiendaID;constraint:OnDelete:CASCADE" json:"tallas,omitempty"`
}

func (ZapatillaTienda) TableName() string { return "zapatillas_tienda" }
