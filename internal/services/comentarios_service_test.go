package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wendarnation/quimerabackend/internal/dto"
)

func TestComentariosCreateRequiresZapatilla(t *testing.T) {
	db := newTestDB(t)
	svc := NewComentariosService(db)
	user := seedUsuario(t, db, "auth0|a", "ana@example.com")

	_, err := svc.Create(user.ID, &dto.CreateComentarioRequest{
		ZapatillaID: uuid.New(),
		Texto:       "great shoe",
	})
	assert.ErrorIs(t, err, ErrZapatillaNotFound)
}

func TestComentariosNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewComentariosService(db)
	user := seedUsuario(t, db, "auth0|a", "ana@example.com")
	z := seedZapatilla(t, db, "Nike", "Dunk Low", "DL1")

	primero, err := svc.Create(user.ID, &dto.CreateComentarioRequest{ZapatillaID: z.ID, Texto: "primero"})
	require.NoError(t, err)
	segundo, err := svc.Create(user.ID, &dto.CreateComentarioRequest{ZapatillaID: z.ID, Texto: "segundo"})
	require.NoError(t, err)

	// Force distinct timestamps; autoCreateTime resolution can collide.
	require.NoError(t, db.Model(primero).Update("fecha", "2026-01-01 10:00:00").Error)
	require.NoError(t, db.Model(segundo).Update("fecha", "2026-01-02 10:00:00").Error)

	comentarios, err := svc.FindByZapatilla(z.ID)
	require.NoError(t, err)
	require.Len(t, comentarios, 2)
	assert.Equal(t, "segundo", comentarios[0].Texto)
}

func TestComentariosOwnerOnlyMutation(t *testing.T) {
	db := newTestDB(t)
	svc := NewComentariosService(db)
	ana := seedUsuario(t, db, "auth0|a", "ana@example.com")
	eva := seedUsuario(t, db, "auth0|b", "eva@example.com")
	z := seedZapatilla(t, db, "Nike", "Dunk Low", "DL1")

	c, err := svc.Create(ana.ID, &dto.CreateComentarioRequest{ZapatillaID: z.ID, Texto: "mine"})
	require.NoError(t, err)

	_, err = svc.Update(c.ID, eva.ID, &dto.UpdateComentarioRequest{Texto: "hijacked"})
	assert.ErrorIs(t, err, ErrComentarioAjeno)

	_, err = svc.Remove(c.ID, eva.ID)
	assert.ErrorIs(t, err, ErrComentarioAjeno)

	updated, err := svc.Update(c.ID, ana.ID, &dto.UpdateComentarioRequest{Texto: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Texto)
}
