package models

import (
	"time"

	"github.com/google/uuid"
)

// Talla is a size offered by one listing. The label is free text (EU/US
// sizing is not normalized).
type Talla struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ZapatillaTiendaID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_talla_listing" json:"zapatilla_tienda_id"`
	Talla              string    `gorm:"size:20;not null;uniqueIndex:idx_talla_listing" json:"talla"`
	Disponible         bool      `gorm:"default:true" json:"disponible"`
	FechaActualizacion time.Time `gorm:"autoUpdateTime" json:"fecha_actualizacion"`

	ZapatillaTienda *ZapatillaTienda `gorm:"foreignKey:ZapatillaTiendaID" json:"zapatilla_tienda,omitempty"`
}

func (Talla) TableName() string { return "tallas" }
