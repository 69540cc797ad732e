package models

import (
	"time"

	"github.com/google/uuid"
)

// ListaFavoritos is a user's favorites list. Every user owns exactly one
// default list ("Favoritos") which cannot be deleted.
type ListaFavoritos struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UsuarioID      uuid.UUID `gorm:"type:uuid;not null;index" json:"usuario_id"`
	Nombre         string    `gorm:"size:255;not null" json:"nombre"`
	Predeterminada bool      `gorm:"default:false" json:"predeterminada"`
	FechaCreacion  time.Time `gorm:"autoCreateTime" json:"fecha_creacion"`

	Zapatillas []ListaFavoritosZapatilla `gorm:"foreignKey:ListaID;constraint:OnDelete:CASCADE" json:"zapatillas,omitempty"`
}

func (ListaFavoritos) TableName() string { return "listas_favoritos" }

// ListaFavoritosZapatilla joins a list to a sneaker; a sneaker appears at
// most once per list.
type ListaFavoritosZapatilla struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ListaID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_lista_zapatilla" json:"lista_id"`
	ZapatillaID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_lista_zapatilla" json:"zapatilla_id"`
	FechaAgregado time.Time `gorm:"autoCreateTime" json:"fecha_agregado"`

	Zapatilla *Zapatilla `gorm:"foreignKey:ZapatillaID" json:"zapatilla,omitempty"`
}

func (ListaFavoritosZapatilla) TableName() string { return "listas_favoritos_zapatillas" }
