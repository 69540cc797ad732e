package models

import (
	"time"

	"github.com/google/uuid"
)

// Tienda is a store that sells sneakers. Soft-deleted via Activa.
type Tienda struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Nombre        string    `gorm:"size:255;not null" json:"nombre"`
	URL           string    `gorm:"size:500" json:"url"`
	Activa        bool      `gorm:"default:true" json:"activa"`
	FechaCreacion time.Time `gorm:"autoCreateTime" json:"fecha_creacion"`

	Zapatillas []ZapatillaTienda `gorm:"foreignKey:TiendaID;constraint:OnDelete:CASCADE" json:"zapatillas_tienda,omitempty"`
}

func (Tienda) TableName() string { return "tiendas" }
