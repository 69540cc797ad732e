package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wendarnation/quimerabackend/internal/dto"
)

func TestValoracionesRangeValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewValoracionesService(db)
	user := seedUsuario(t, db, "auth0|a", "ana@example.com")
	z := seedZapatilla(t, db, "Nike", "Dunk Low", "DL1")

	for _, puntuacion := range []int{0, 6, -1} {
		_, err := svc.Create(user.ID, &dto.CreateValoracionRequest{
			ZapatillaID: z.ID,
			Puntuacion:  puntuacion,
		})
		assert.ErrorIs(t, err, ErrPuntuacionInvalida)
	}

	_, err := svc.Create(user.ID, &dto.CreateValoracionRequest{ZapatillaID: z.ID, Puntuacion: 5})
	assert.NoError(t, err)
}

func TestValoracionesOnePerUserAndZapatilla(t *testing.T) {
	db := newTestDB(t)
	svc := NewValoracionesService(db)
	user := seedUsuario(t, db, "auth0|a", "ana@example.com")
	z := seedZapatilla(t, db, "Nike", "Dunk Low", "DL1")

	_, err := svc.Create(user.ID, &dto.CreateValoracionRequest{ZapatillaID: z.ID, Puntuacion: 4})
	require.NoError(t, err)

	_, err = svc.Create(user.ID, &dto.CreateValoracionRequest{ZapatillaID: z.ID, Puntuacion: 2})
	assert.ErrorIs(t, err, ErrValoracionDuplicada)
}

func TestValoracionesAverage(t *testing.T) {
	db := newTestDB(t)
	svc := NewValoracionesService(db)
	ana := seedUsuario(t, db, "auth0|a", "ana@example.com")
	eva := seedUsuario(t, db, "auth0|b", "eva@example.com")
	z := seedZapatilla(t, db, "Nike", "Dunk Low", "DL1")

	_, err := svc.Create(ana.ID, &dto.CreateValoracionRequest{ZapatillaID: z.ID, Puntuacion: 5})
	require.NoError(t, err)
	_, err = svc.Create(eva.ID, &dto.CreateValoracionRequest{ZapatillaID: z.ID, Puntuacion: 2})
	require.NoError(t, err)

	avg, err := svc.Average(z.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), avg.Count)
	assert.InDelta(t, 3.5, avg.Average, 0.001)
}

func TestValoracionesAverageEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := NewValoracionesService(db)
	z := seedZapatilla(t, db, "Nike", "Dunk Low", "DL1")

	avg, err := svc.Average(z.ID)
	require.NoError(t, err)
	assert.Zero(t, avg.Count)
	assert.Zero(t, avg.Average)

	_, err = svc.Average(uuid.New())
	assert.ErrorIs(t, err, ErrZapatillaNotFound)
}

func TestValoracionesOwnerOnlyMutation(t *testing.T) {
	db := newTestDB(t)
	svc := NewValoracionesService(db)
	ana := seedUsuario(t, db, "auth0|a", "ana@example.com")
	eva := seedUsuario(t, db, "auth0|b", "eva@example.com")
	z := seedZapatilla(t, db, "Nike", "Dunk Low", "DL1")

	v, err := svc.Create(ana.ID, &dto.CreateValoracionRequest{ZapatillaID: z.ID, Puntuacion: 4})
	require.NoError(t, err)

	_, err = svc.Update(v.ID, eva.ID, &dto.UpdateValoracionRequest{Puntuacion: 1})
	assert.ErrorIs(t, err, ErrValoracionAjena)

	_, err = svc.Remove(v.ID, eva.ID)
	assert.ErrorIs(t, err, ErrValoracionAjena)

	updated, err := svc.Update(v.ID, ana.ID, &dto.UpdateValoracionRequest{Puntuacion: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Puntuacion)
}
