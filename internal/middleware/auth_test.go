package middleware

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudienceMatches(t *testing.T) {
	assert.True(t, audienceMatches("https://api.quimera.com", "https://api.quimera.com"))
	assert.False(t, audienceMatches("https://other.com", "https://api.quimera.com"))

	// aud may arrive as an array; one hit is enough.
	aud := []interface{}{"https://tenant/userinfo", "https://api.quimera.com"}
	assert.True(t, audienceMatches(aud, "https://api.quimera.com"))
	assert.False(t, audienceMatches([]interface{}{}, "https://api.quimera.com"))
	assert.False(t, audienceMatches(nil, "https://api.quimera.com"))
}

func TestInitialRole(t *testing.T) {
	assert.Equal(t, "sistema", initialRole(true, nil))
	assert.Equal(t, "sistema", initialRole(true, []string{"admin:zapatillas"}))
	// Any permission on a first-seen user token is read as an admin marker.
	assert.Equal(t, "admin", initialRole(false, []string{"read:whatever"}))
	assert.Equal(t, "usuario", initialRole(false, nil))
}

func TestClaimStrings(t *testing.T) {
	got := claimStrings([]interface{}{"a", "", "b", 42})
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Nil(t, claimStrings("not-a-list"))
	assert.Nil(t, claimStrings(nil))
}

func TestFirstClaimString(t *testing.T) {
	claims := jwt.MapClaims{
		"name":     "Ana",
		"nickname": "",
	}
	got := firstClaimString(claims, "nombre_completo", "name")
	require.NotNil(t, got)
	assert.Equal(t, "Ana", *got)

	assert.Nil(t, firstClaimString(claims, "nickname", "custom_nickname"))
}
