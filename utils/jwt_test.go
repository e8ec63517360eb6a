package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"webgestor/config"
	"webgestor/models"
)

func TestGenerateAndParseJWTToken(t *testing.T) {
	config.AppConfig.EncryptionKey = "test-encryption-key"

	user := &models.User{
		Model:        gorm.Model{ID: 42},
		Email:        "user@example.com",
		TokenVersion: 3,
	}

	access, refresh, err := GenerateJWTToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := ParseJWTToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, 3, claims.TokenVersion)

	refreshClaims, err := ParseJWTToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, uint(42), refreshClaims.UserID)
	assert.True(t, refreshClaims.ExpiresAt.After(claims.ExpiresAt.Time))
}

func TestParseJWTTokenRejectsTampering(t *testing.T) {
	config.AppConfig.EncryptionKey = "test-encryption-key"

	user := &models.User{Model: gorm.Model{ID: 1}}
	access, _, err := GenerateJWTToken(user)
	require.NoError(t, err)

	_, err = ParseJWTToken(access + "x")
	assert.Error(t, err)

	_, err = ParseJWTToken("not-a-token")
	assert.Error(t, err)
}

func TestParseJWTTokenRejectsWrongKey(t *testing.T) {
	config.AppConfig.EncryptionKey = "key-one"
	user := &models.User{Model: gorm.Model{ID: 1}}
	access, _, err := GenerateJWTToken(user)
	require.NoError(t, err)

	config.AppConfig.EncryptionKey = "key-two"
	_, err = ParseJWTToken(access)
	assert.Error(t, err)
}
