package models

import (
	"time"

	"github.com/google/uuid"
)

// Usuario is the local mirror of an Auth0 account. The local Rol is the
// source of truth for authorization; the Auth0 copy is corrected
// opportunistically.
type Usuario struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Auth0ID        string    `gorm:"size:255;not null;uniqueIndex" json:"auth0_id"`
	Email          string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Rol            string    `gorm:"size:50;default:'usuario'" json:"rol"`
	NombreCompleto *string   `gorm:"size:255" json:"nombre_completo"`
	Nickname       *string   `gorm:"size:100;uniqueIndex" json:"nickname"`
	FirstLogin     bool      `gorm:"default:true" json:"first_login"`
	FechaRegistro  time.Time `gorm:"autoCreateTime" json:"fecha_registro"`

	ListasFavoritos []ListaFavoritos `gorm:"foreignKey:UsuarioID;constraint:OnDelete:CASCADE" json:"listas_favoritos,omitempty"`
	Comentarios     []Comentario     `gorm:"foreignKey:UsuarioID;constraint:OnDelete:CASCADE" json:"comentarios,omitempty"`
	Valoraciones    []Valoracion     `gorm:"foreignKey:UsuarioID;constraint:OnDelete:CASCADE" json:"valoraciones,omitempty"`
}

func (Usuario) TableName() string { return "usuarios" }

// PerfilCompleto reports whether both profile fields are filled in.
func (u *Usuario) PerfilCompleto() bool {
	return u.NombreCompleto != nil && *u.NombreCompleto != "" &&
		u.Nickname != nil && *u.Nickname != ""
}
