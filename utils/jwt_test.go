package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GEDDY90/wadoo-backend/entity"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, entity.RoleOwner, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, entity.RoleOwner, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(1, entity.RoleClient, "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "other")
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken(1, entity.RoleClient, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, "secret")
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token", "secret")
	assert.Error(t, err)
}
