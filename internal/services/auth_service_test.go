package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wendarnation/quimerabackend/internal/auth0"
	"github.com/wendarnation/quimerabackend/internal/dto"
	"github.com/wendarnation/quimerabackend/internal/models"
)

// fakeMgmt records every mirror call so tests can assert on upstream
// traffic without a live tenant.
type fakeMgmt struct {
	users    map[string]*auth0.ManagementUser
	roles    []auth0.Role
	updates  []auth0.UserUpdate
	assigned []string
	deleted  []string
	fail     bool
}

func newFakeMgmt() *fakeMgmt {
	return &fakeMgmt{
		users: map[string]*auth0.ManagementUser{},
		roles: []auth0.Role{
			{ID: "rol_admin", Name: "admin"},
			{ID: "rol_usuario", Name: "usuario"},
		},
	}
}

var errFakeDown = errors.New("management api unavailable")

func (f *fakeMgmt) GetUser(_ context.Context, auth0ID string) (*auth0.ManagementUser, error) {
	if f.fail {
		return nil, errFakeDown
	}
	if u, ok := f.users[auth0ID]; ok {
		return u, nil
	}
	return nil, &auth0.UpstreamError{Op: "get user", StatusCode: 404}
}

func (f *fakeMgmt) UpdateUser(_ context.Context, auth0ID string, upd auth0.UserUpdate) error {
	if f.fail {
		return errFakeDown
	}
	f.updates = append(f.updates, upd)
	return nil
}

func (f *fakeMgmt) FindRoleByName(_ context.Context, name string) (*auth0.Role, error) {
	if f.fail {
		return nil, errFakeDown
	}
	for i := range f.roles {
		if f.roles[i].Name == name {
			return &f.roles[i], nil
		}
	}
	return nil, nil
}

func (f *fakeMgmt) AssignRole(_ context.Context, auth0ID, roleID string) error {
	if f.fail {
		return errFakeDown
	}
	f.assigned = append(f.assigned, auth0ID+":"+roleID)
	return nil
}

func (f *fakeMgmt) DeleteUser(_ context.Context, auth0ID string) (auth0.DeleteResult, error) {
	if f.fail {
		return auth0.DeleteResult{}, errFakeDown
	}
	f.deleted = append(f.deleted, auth0ID)
	return auth0.DeleteResult{Deleted: true}, nil
}

func TestFindOrCreateUserCreatesWithDefaultList(t *testing.T) {
	db := newTestDB(t)
	mgmt := newFakeMgmt()
	svc := NewAuthService(db, mgmt)

	user, err := svc.FindOrCreateUser(context.Background(), "auth0|abc", "ana@example.com", strPtr("Ana"), strPtr("ana_sneaks"), "usuario")
	require.NoError(t, err)

	assert.Equal(t, "usuario", user.Rol)
	assert.True(t, user.FirstLogin)

	var listas []models.ListaFavoritos
	require.NoError(t, db.Where("usuario_id = ?", user.ID).Find(&listas).Error)
	require.Len(t, listas, 1)
	assert.Equal(t, "Favoritos", listas[0].Nombre)
	assert.True(t, listas[0].Predeterminada)
}

func TestFindOrCreateUserRequiresEmail(t *testing.T) {
	svc := NewAuthService(newTestDB(t), newFakeMgmt())

	_, err := svc.FindOrCreateUser(context.Background(), "auth0|abc", "", nil, nil, "usuario")
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestFindOrCreateUserMetadataRoleWins(t *testing.T) {
	db := newTestDB(t)
	mgmt := newFakeMgmt()
	mgmt.users["auth0|abc"] = &auth0.ManagementUser{
		UserID:       "auth0|abc",
		UserMetadata: map[string]interface{}{"rol": "admin"},
	}
	svc := NewAuthService(db, mgmt)

	user, err := svc.FindOrCreateUser(context.Background(), "auth0|abc", "ana@example.com", nil, nil, "usuario")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Rol)
}

func TestFindOrCreateUserSynthesizesNickname(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newFakeMgmt())

	user, err := svc.FindOrCreateUser(context.Background(), "auth0|abc", "ana@example.com", nil, nil, "")
	require.NoError(t, err)
	require.NotNil(t, user.Nickname)
	assert.Equal(t, "ana", *user.Nickname)
}

func TestFindOrCreateUserNeverDowngradesRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newFakeMgmt())
	ctx := context.Background()

	user, err := svc.FindOrCreateUser(ctx, "auth0|abc", "ana@example.com", nil, nil, "admin")
	require.NoError(t, err)
	require.Equal(t, "admin", user.Rol)

	// Subsequent syncs with a weaker proposed role leave the stored role alone.
	again, err := svc.FindOrCreateUser(ctx, "auth0|abc", "ana@example.com", nil, nil, "usuario")
	require.NoError(t, err)
	assert.Equal(t, "admin", again.Rol)
}

func TestFindOrCreateUserConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newFakeMgmt())
	ctx := context.Background()

	_, err := svc.FindOrCreateUser(ctx, "auth0|a", "ana@example.com", nil, strPtr("ana"), "")
	require.NoError(t, err)

	_, err = svc.FindOrCreateUser(ctx, "auth0|b", "ana@example.com", nil, nil, "")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.FindOrCreateUser(ctx, "auth0|c", "otra@example.com", nil, strPtr("ana"), "")
	assert.ErrorIs(t, err, ErrNicknameTaken)
}

func TestFindOrCreateUserFirstLoginProfileFill(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newFakeMgmt())
	ctx := context.Background()

	_, err := svc.FindOrCreateUser(ctx, "auth0|abc", "ana@example.com", nil, nil, "")
	require.NoError(t, err)

	user, err := svc.FindOrCreateUser(ctx, "auth0|abc", "ana@example.com", strPtr("Ana García"), nil, "")
	require.NoError(t, err)
	assert.False(t, user.FirstLogin)
	require.NotNil(t, user.NombreCompleto)
	assert.Equal(t, "Ana García", *user.NombreCompleto)
}

func TestFindOrCreateUserSurvivesMirrorFailure(t *testing.T) {
	db := newTestDB(t)
	mgmt := newFakeMgmt()
	mgmt.fail = true
	svc := NewAuthService(db, mgmt)

	// Local creation is authoritative; a dead management API only costs
	// the mirror.
	user, err := svc.FindOrCreateUser(context.Background(), "auth0|abc", "ana@example.com", nil, nil, "usuario")
	require.NoError(t, err)
	assert.Equal(t, "usuario", user.Rol)
}

func TestUpdateUserRoleOverwritesAndMirrors(t *testing.T) {
	db := newTestDB(t)
	mgmt := newFakeMgmt()
	svc := NewAuthService(db, mgmt)
	ctx := context.Background()

	user, err := svc.FindOrCreateUser(ctx, "auth0|abc", "ana@example.com", nil, nil, "usuario")
	require.NoError(t, err)

	updated, err := svc.UpdateUserRole(ctx, user.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", updated.Rol)
	assert.False(t, updated.FirstLogin)

	assert.Contains(t, mgmt.assigned, "auth0|abc:rol_admin")
}

func TestUpdateUserProfileTriState(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newFakeMgmt())
	ctx := context.Background()

	user, err := svc.FindOrCreateUser(ctx, "auth0|abc", "ana@example.com", strPtr("Ana"), strPtr("ana"), "usuario")
	require.NoError(t, err)

	// Absent nombre stays; explicit null nickname clears.
	updated, err := svc.UpdateUserProfile(ctx, user.ID, &dto.UpdateUsuarioRequest{
		Nickname: dto.OptionalString{Set: true, Value: nil},
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Nickname)
	require.NotNil(t, updated.NombreCompleto)
	assert.Equal(t, "Ana", *updated.NombreCompleto)
}

func TestUpdateUserProfileEmailConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newFakeMgmt())
	ctx := context.Background()

	_, err := svc.FindOrCreateUser(ctx, "auth0|a", "ana@example.com", nil, nil, "")
	require.NoError(t, err)
	user, err := svc.FindOrCreateUser(ctx, "auth0|b", "eva@example.com", nil, nil, "")
	require.NoError(t, err)

	_, err = svc.UpdateUserProfile(ctx, user.ID, &dto.UpdateUsuarioRequest{
		Email: dto.OptionalString{Set: true, Value: strPtr("ana@example.com")},
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Re-submitting your own email is not a conflict.
	_, err = svc.UpdateUserProfile(ctx, user.ID, &dto.UpdateUsuarioRequest{
		Email: dto.OptionalString{Set: true, Value: strPtr("eva@example.com")},
	})
	assert.NoError(t, err)
}

func TestRemoveDeletesLocalAndUpstream(t *testing.T) {
	db := newTestDB(t)
	mgmt := newFakeMgmt()
	svc := NewAuthService(db, mgmt)
	ctx := context.Background()

	user, err := svc.FindOrCreateUser(ctx, "auth0|abc", "ana@example.com", nil, nil, "")
	require.NoError(t, err)

	_, err = svc.Remove(ctx, user.ID)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Usuario{}).Where("id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
	assert.Contains(t, mgmt.deleted, "auth0|abc")
}

func TestRemoveUnknownUser(t *testing.T) {
	svc := NewAuthService(newTestDB(t), newFakeMgmt())

	_, err := svc.Remove(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUsuarioNotFound)
}

func TestSintetizarNickname(t *testing.T) {
	assert.Equal(t, "ana.garcia", sintetizarNickname("ana.garcia@example.com"))
	// Without an @ the fallback is random but prefixed.
	assert.Contains(t, sintetizarNickname("not-an-email"), "user_")
}
