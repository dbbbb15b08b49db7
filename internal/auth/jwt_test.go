package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamroast/pos-api/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	user := models.User{ID: "u-1", Name: "Ana", Role: models.RoleCashier}

	token, err := GenerateToken(secret, user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, models.RoleCashier, claims.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken([]byte("secret-a"), models.User{ID: "u-1"})
	require.NoError(t, err)

	_, err = ValidateToken([]byte("secret-b"), token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken([]byte("secret"), "not.a.token")
	assert.Error(t, err)
}
