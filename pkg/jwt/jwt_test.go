package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager("test-secret", 15*time.Minute, 72*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken("user-1", "a@example.com", "customer")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	claims, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestTokenTypeMismatch(t *testing.T) {
	m := newTestManager()

	refresh, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err, "refresh token must not pass as access token")

	access, err := m.GenerateAccessToken("user-1", "a@example.com", "customer")
	require.NoError(t, err)
	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err, "access token must not pass as refresh token")
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := newTestManager().GenerateAccessToken("user-1", "a@example.com", "customer")
	require.NoError(t, err)

	other := NewManager("different-secret", 15*time.Minute, 72*time.Hour)
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, 72*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "a@example.com", "customer")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}
