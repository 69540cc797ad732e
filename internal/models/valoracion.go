package models

import (
	"time"

	"github.com/google/uuid"
)

// Valoracion is a 1-5 rating. At most one per (usuario, zapatilla) pair,
// enforced by the composite unique index.
type Valoracion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UsuarioID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_valoracion_usuario_zapatilla" json:"usuario_id"`
	ZapatillaID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_valoracion_usuario_zapatilla" json:"zapatilla_id"`
	Puntuacion  int       `gorm:"not null" json:"puntuacion"`
	Fecha       time.Time `gorm:"autoCreateTime" json:"fecha"`

	Usuario   *Usuario   `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`
	Zapatilla *Zapatilla `gorm:"foreignKey:ZapatillaID" json:"zapatilla,omitempty"`
}

func (Valoracion) TableName() string { return "valoraciones" }
