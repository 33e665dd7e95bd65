package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndParse(t *testing.T) {
	svc, err := NewJWTService("test-secret", 60)
	require.NoError(t, err)

	token, err := svc.GenerateToken("alice@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", claims.Email)
}

func TestJWTService_ParseRejectsWrongSecret(t *testing.T) {
	issuer, err := NewJWTService("secret-a", 60)
	require.NoError(t, err)
	verifier, err := NewJWTService("secret-b", 60)
	require.NoError(t, err)

	token, err := issuer.GenerateToken("alice@x.com")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func TestJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService("", 60)
	assert.Error(t, err)
}

func TestJWTService_ParseRejectsGarbage(t *testing.T) {
	svc, err := NewJWTService("test-secret", 60)
	require.NoError(t, err)

	_, err = svc.ParseToken("not.a.token")
	assert.Error(t, err)
}
