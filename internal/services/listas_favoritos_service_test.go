package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wendarnation/quimerabackend/internal/dto"
	"github.com/wendarnation/quimerabackend/internal/models"
	"gorm.io/gorm"
)

func seedLista(t *testing.T, db *gorm.DB, usuarioID uuid.UUID, nombre string, predeterminada bool) models.ListaFavoritos {
	t.Helper()
	lista := models.ListaFavoritos{
		ID:             uuid.New(),
		UsuarioID:      usuarioID,
		Nombre:         nombre,
		Predeterminada: predeterminada,
	}
	if err := db.Create(&lista).Error; err != nil {
		t.Fatalf("failed to seed lista: %v", err)
	}
	return lista
}

func TestListasSecondDefaultRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewListasFavoritosService(db)
	user := seedUsuario(t, db, "auth0|a", "ana@example.com")
	seedLista(t, db, user.ID, "Favoritos", true)

	_, err := svc.Create(user.ID, &dto.CreateListaFavoritosRequest{
		Nombre:         "Otra default",
		Predeterminada: true,
	})
	assert.ErrorIs(t, err, ErrPredeterminadaExiste)

	// A non-default second list is fine.
	_, err = svc.Create(user.ID, &dto.CreateListaFavoritosRequest{Nombre: "Wishlist"})
	assert.NoError(t, err)
}

func TestListasOwnershipIsForbiddenNotHidden(t *testing.T) {
	db := newTestDB(t)
	svc := NewListasFavoritosService(db)
	ana := seedUsuario(t, db, "auth0|a", "ana@example.com")
	eva := seedUsuario(t, db, "auth0|b", "eva@example.com")
	lista := seedLista(t, db, ana.ID, "Favoritos", true)

	_, err := svc.FindOne(lista.ID, eva.ID)
	assert.ErrorIs(t, err, ErrListaAjena)

	_, err = svc.FindOne(uuid.New(), eva.ID)
	assert.ErrorIs(t, err, ErrListaNotFound)
}

func TestListasDefaultCannotBeDeleted(t *testing.T) {
	db := newTestDB(t)
	svc := NewListasFavoritosService(db)
	user := seedUsuario(t, db, "auth0|a", "ana@example.com")
	def := seedLista(t, db, user.ID, "Favoritos", true)
	extra := seedLista(t, db, user.ID, "Wishlist", false)

	_, err := svc.Remove(def.ID, user.ID)
	assert.ErrorIs(t, err, ErrListaPredeterminada)

	_, err = svc.Remove(extra.ID, user.ID)
	assert.NoError(t, err)
}

func TestListasPromoteDemotesPreviousDefault(t *testing.T) {
	db := newTestDB(t)
	svc := NewListasFavoritosService(db)
	user := seedUsuario(t, db, "auth0|a", "ana@example.com")
	def := seedLista(t, db, user.ID, "Favoritos", true)
	extra := seedLista(t, db, user.ID, "Wishlist", false)

	updated, err := svc.Update(extra.ID, user.ID, &dto.UpdateListaFavoritosRequest{
		Predeterminada: boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, updated.Predeterminada)

	var old models.ListaFavoritos
	require.NoError(t, db.First(&old, "id = ?", def.ID).Error)
	assert.False(t, old.Predeterminada)

	var defaults int64
	require.NoError(t, db.Model(&models.ListaFavoritos{}).
		Where("usuario_id = ? AND predeterminada = ?", user.ID, true).
		Count(&defaults).Error)
	assert.Equal(t, int64(1), defaults)
}

func TestListasAddZapatilla(t *testing.T) {
	db := newTestDB(t)
	svc := NewListasFavoritosService(db)
	user := seedUsuario(t, db, "auth0|a", "ana@example.com")
	lista := seedLista(t, db, user.ID, "Favoritos", true)
	z := seedZapatilla(t, db, "Nike", "Dunk Low", "DL1")

	_, err := svc.AddZapatilla(lista.ID, user.ID, &dto.AddZapatillaListaRequest{ZapatillaID: z.ID})
	require.NoError(t, err)

	// Same sneaker twice is a conflict, unknown sneaker is not found.
	_, err = svc.AddZapatilla(lista.ID, user.ID, &dto.AddZapatillaListaRequest{ZapatillaID: z.ID})
	assert.ErrorIs(t, err, ErrZapatillaYaEnLista)

	_, err = svc.AddZapatilla(lista.ID, user.ID, &dto.AddZapatillaListaRequest{ZapatillaID: uuid.New()})
	assert.ErrorIs(t, err, ErrZapatillaNotFound)
}

func TestListasRemoveZapatilla(t *testing.T) {
	db := newTestDB(t)
	svc := NewListasFavoritosService(db)
	user := seedUsuario(t, db, "auth0|a", "ana@example.com")
	lista := seedLista(t, db, user.ID, "Favoritos", true)
	z := seedZapatilla(t, db, "Nike", "Dunk Low", "DL1")

	_, err := svc.AddZapatilla(lista.ID, user.ID, &dto.AddZapatillaListaRequest{ZapatillaID: z.ID})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveZapatilla(lista.ID, z.ID, user.ID))
	assert.ErrorIs(t, svc.RemoveZapatilla(lista.ID, z.ID, user.ID), ErrZapatillaNoEstaEnLista)
}
