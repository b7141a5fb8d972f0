package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mboma-backend/internal/config"
	"mboma-backend/internal/models"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, VerifyPassword(hash, "hunter22"))
	assert.False(t, VerifyPassword(hash, "hunter23"))
	assert.False(t, VerifyPassword(hash, ""))
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("hunter22")
	require.NoError(t, err)
	h2, err := HashPassword("hunter22")
	require.NoError(t, err)

	// bcrypt embeds a random salt, so two hashes of the same password differ
	assert.NotEqual(t, h1, h2)
}

func testJWTConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "mboma-backend"
	return cfg
}

func TestJWTRoundTrip(t *testing.T) {
	mgr := NewJWTManager(testJWTConfig())

	user := &models.User{ID: 42, Email: "wanjiku@example.com"}
	token, err := mgr.GenerateToken(user)
	require.NoError(t, err)

	claims, err := mgr.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "wanjiku@example.com", claims.Email)
	assert.Equal(t, "mboma-backend", claims.Issuer)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	mgr := NewJWTManager(testJWTConfig())

	token, err := mgr.GenerateToken(&models.User{ID: 42, Email: "wanjiku@example.com"})
	require.NoError(t, err)

	otherCfg := testJWTConfig()
	otherCfg.JWT.Secret = "different-secret"
	other := NewJWTManager(otherCfg)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTRejectsGarbage(t *testing.T) {
	mgr := NewJWTManager(testJWTConfig())

	_, err := mgr.ValidateToken("not.a.token")
	assert.Error(t, err)
}
