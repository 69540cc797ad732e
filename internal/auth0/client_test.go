package auth0

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return &Client{baseURL: srv.URL, http: srv.Client()}, srv
}

func TestGetUserUpstreamError(t *testing.T) {
	c, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	}))
	defer srv.Close()

	_, err := c.GetUser(context.Background(), "auth0|missing")
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusNotFound, ue.StatusCode)
	assert.Equal(t, "get user", ue.Op)
}

func TestFindRoleByNameCaseInsensitive(t *testing.T) {
	c, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Role{
			{ID: "rol_1", Name: "Admin"},
			{ID: "rol_2", Name: "usuario"},
		})
	}))
	defer srv.Close()

	role, err := c.FindRoleByName(context.Background(), "admin")
	require.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, "rol_1", role.ID)

	role, err = c.FindRoleByName(context.Background(), "sistema")
	require.NoError(t, err)
	assert.Nil(t, role)
}

func TestAssignRoleIdempotent(t *testing.T) {
	var assigns int
	c, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			// Role already held.
			json.NewEncoder(w).Encode([]Role{{ID: "rol_1", Name: "admin"}})
		case http.MethodPost:
			assigns++
			w.WriteHeader(http.StatusCreated)
		}
	}))
	defer srv.Close()

	require.NoError(t, c.AssignRole(context.Background(), "auth0|abc", "rol_1"))
	assert.Zero(t, assigns)
}

func TestAssignRoleWhenMissing(t *testing.T) {
	var assigns int
	c, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode([]Role{})
		case http.MethodPost:
			assigns++
			var body map[string][]string
			json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, []string{"rol_1"}, body["roles"])
			w.WriteHeader(http.StatusCreated)
		}
	}))
	defer srv.Close()

	require.NoError(t, c.AssignRole(context.Background(), "auth0|abc", "rol_1"))
	assert.Equal(t, 1, assigns)
}

func TestUpdateUserMergesMetadata(t *testing.T) {
	var patched map[string]interface{}
	c, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(ManagementUser{
				UserID: "auth0|abc",
				UserMetadata: map[string]interface{}{
					"unrelated": "keep-me",
					"rol":       "usuario",
				},
			})
		case http.MethodPatch:
			json.NewDecoder(r.Body).Decode(&patched)
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	nombre := "Ana García"
	err := c.UpdateUser(context.Background(), "auth0|abc", UserUpdate{NombreCompleto: &nombre})
	require.NoError(t, err)

	require.NotNil(t, patched)
	assert.Equal(t, "Ana García", patched["name"])
	meta, ok := patched["user_metadata"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Ana García", meta["full_name"])
	// Keys this system never writes survive the merge.
	assert.Equal(t, "keep-me", meta["unrelated"])
	assert.Equal(t, "usuario", meta["rol"])
}

func TestUpdateUserDegradesOnMetadataFetchFailure(t *testing.T) {
	var patched map[string]interface{}
	c, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusInternalServerError)
		case http.MethodPatch:
			json.NewDecoder(r.Body).Decode(&patched)
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	nick := "ana_sneaks"
	err := c.UpdateUser(context.Background(), "auth0|abc", UserUpdate{Nickname: &nick})
	require.NoError(t, err)
	assert.Equal(t, "ana_sneaks", patched["nickname"])
}

func TestDeleteUserSkipsMachineClients(t *testing.T) {
	var calls int
	c, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	result, err := c.DeleteUser(context.Background(), "abc123@clients")
	require.NoError(t, err)
	assert.False(t, result.Deleted)
	assert.Equal(t, "client_id_not_user", result.Reason)
	assert.Zero(t, calls)
}

func TestDeleteUser(t *testing.T) {
	c, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	result, err := c.DeleteUser(context.Background(), "auth0|abc")
	require.NoError(t, err)
	assert.True(t, result.Deleted)
}

func TestMetadataRol(t *testing.T) {
	u := &ManagementUser{UserMetadata: map[string]interface{}{"rol": "admin"}}
	assert.Equal(t, "admin", u.MetadataRol())

	assert.Empty(t, (&ManagementUser{}).MetadataRol())
	var nilUser *ManagementUser
	assert.Empty(t, nilUser.MetadataRol())
}
