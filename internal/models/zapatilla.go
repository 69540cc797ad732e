package models

import (
	"time"

	"github.com/google/uuid"
)

// Zapatilla is a catalog sneaker. Rows are never hard-deleted: remove
// clears Activa instead.
type Zapatilla struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Marca         string    `gorm:"size:100;not null;index" json:"marca"`
	Modelo        string    `gorm:"size:255;not null" json:"modelo"`
	SKU           string    `gorm:"size:100;not null;uniqueIndex" json:"sku"`
	Imagen        string    `gorm:"size:500" json:"imagen"`
	Descripcion   string    `gorm:"type:text" json:"descripcion"`
	Categoria     string    `gorm:"size:100;index" json:"categoria"`
	Activa        bool      `gorm:"default:true;index" json:"activa"`
	FechaCreacion time.Time `gorm:"autoCreateTime" json:"fecha_creacion"`

	Tiendas      []ZapatillaTienda `gorm:"foreignKey:ZapatillaID;constraint:OnDelete:CASCADE" json:"zapatillas_tienda,omitempty"`
	Comentarios  []Comentario      `gorm:"foreignKey:ZapatillaID;constraint:OnDelete:CASCADE" json:"comentarios,omitempty"`
	Valoraciones []Valoracion      `gorm:"foreignKey:ZapatillaID;constraint:OnDelete:CASCADE" json:"valoraciones,omitempty"`
}

func (Zapatilla) TableName() string { return "zapatillas" }
