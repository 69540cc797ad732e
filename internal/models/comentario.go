package models

import (
	"time"

	"github.com/google/uuid"
)

type Comentario struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UsuarioID   uuid.UUID `gorm:"type:uuid;not null;index" json:"usuario_id"`
	ZapatillaID uuid.UUID `gorm:"type:uuid;not null;index" json:"zapatilla_id"`
	Texto       string    `gorm:"type:text;not null" json:"texto"`
	Fecha       time.Time `gorm:"autoCreateTime" json:"fecha"`

	Usuario   *Usuario   `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`
	Zapatilla *Zapatilla `gorm:"foreignKey:ZapatillaID" json:"zapatilla,omitempty"`
}

func (Comentario) TableName() string { return "comentarios" }
