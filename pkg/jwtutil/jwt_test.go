package jwtutil

import (
	"testing"

	"checklist-service/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	util := NewJWTUtil(&config.JWTConfig{SigningKey: "k", ExpirationHours: 1})

	token, err := util.GenerateToken("user-42", "alice@example.com")
	require.NoError(t, err)

	claims, err := util.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Actor())
	assert.Equal(t, "user-42", claims.Subject)
}

func TestValidateToken_WrongKey(t *testing.T) {
	token, err := NewJWTUtil(&config.JWTConfig{SigningKey: "one", ExpirationHours: 1}).GenerateToken("u", "")
	require.NoError(t, err)

	_, err = NewJWTUtil(&config.JWTConfig{SigningKey: "two", ExpirationHours: 1}).ValidateToken(token)
	require.Error(t, err)
}

func TestActor_FallsBackToSubject(t *testing.T) {
	util := NewJWTUtil(&config.JWTConfig{SigningKey: "k", ExpirationHours: 1})
	token, err := util.GenerateToken("user-7", "")
	require.NoError(t, err)

	claims, err := util.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-7", claims.Actor())
}

func TestNilConfig(t *testing.T) {
	util := NewJWTUtil(nil)
	_, err := util.GenerateToken("u", "e")
	require.Error(t, err)
	_, err = util.ValidateToken("x")
	require.Error(t, err)
}
