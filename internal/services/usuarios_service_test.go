package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wendarnation/quimerabackend/internal/dto"
	"github.com/wendarnation/quimerabackend/internal/models"
)

func newUsuariosService(t *testing.T) *UsuariosService {
	t.Helper()
	db := newTestDB(t)
	auth := NewAuthService(db, newFakeMgmt())
	return NewUsuariosService(db, auth)
}

func TestCreateUsuarioSynthesizesNicknameAndDefaultList(t *testing.T) {
	svc := newUsuariosService(t)

	user, err := svc.Create(&dto.CreateUsuarioRequest{
		Email:   "laura.gomez@example.com",
		Auth0ID: "auth0|admin-created",
	})
	require.NoError(t, err)
	require.NotNil(t, user.Nickname)
	assert.Equal(t, "laura.gomez", *user.Nickname)
	assert.Equal(t, "usuario", user.Rol)

	require.Len(t, user.ListasFavoritos, 1)
	assert.Equal(t, "Favoritos", user.ListasFavoritos[0].Nombre)
	assert.True(t, user.ListasFavoritos[0].Predeterminada)
}

func TestCreateUsuarioRejectsEmptyEmail(t *testing.T) {
	svc := newUsuariosService(t)

	_, err := svc.Create(&dto.CreateUsuarioRequest{Auth0ID: "auth0|no-email"})
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestCreateUsuarioRejectsTakenEmailAndNickname(t *testing.T) {
	svc := newUsuariosService(t)
	existing := seedUsuario(t, svc.db, "auth0|existing", "taken@example.com")

	_, err := svc.Create(&dto.CreateUsuarioRequest{
		Email:   "taken@example.com",
		Auth0ID: "auth0|other",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Create(&dto.CreateUsuarioRequest{
		Email:    "fresh@example.com",
		Auth0ID:  "auth0|other",
		Nickname: existing.Nickname,
	})
	assert.ErrorIs(t, err, ErrNicknameTaken)
}

func TestFindAllExceptExcludesCaller(t *testing.T) {
	svc := newUsuariosService(t)
	caller := seedUsuario(t, svc.db, "auth0|caller", "caller@example.com")
	seedUsuario(t, svc.db, "auth0|other", "other@example.com")

	users, err := svc.FindAllExcept(caller.ID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "other@example.com", users[0].Email)
}

func TestFindByEmail(t *testing.T) {
	svc := newUsuariosService(t)
	seeded := seedUsuario(t, svc.db, "auth0|lookup", "lookup@example.com")

	user, err := svc.FindByEmail("lookup@example.com")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, user.ID)

	_, err = svc.FindByEmail("missing@example.com")
	assert.ErrorIs(t, err, ErrUsuarioNotFound)
}

func TestFindOnePreloadsRelations(t *testing.T) {
	svc := newUsuariosService(t)
	user := seedUsuario(t, svc.db, "auth0|relations", "relations@example.com")
	z := seedZapatilla(t, svc.db, "Nike", "Dunk Low", "DD1391-100")

	require.NoError(t, svc.db.Create(&models.Comentario{
		ID:          uuid.New(),
		UsuarioID:   user.ID,
		ZapatillaID: z.ID,
		Texto:       "clásicas",
	}).Error)
	require.NoError(t, svc.db.Create(&models.Valoracion{
		ID:          uuid.New(),
		UsuarioID:   user.ID,
		ZapatillaID: z.ID,
		Puntuacion:  5,
	}).Error)

	found, err := svc.FindOne(user.ID)
	require.NoError(t, err)
	assert.Len(t, found.Comentarios, 1)
	assert.Len(t, found.Valoraciones, 1)

	_, err = svc.FindOne(uuid.New())
	assert.ErrorIs(t, err, ErrUsuarioNotFound)
}
