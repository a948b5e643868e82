package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickfix/booking-service/internal/domain"
)

func testAdmin() *domain.Admin {
	return &domain.Admin{
		ID:       "a6a5c1cf-4c38-46a9-9a35-8e1a4f6a9a01",
		Username: "admin",
		Email:    "admin@quickfix.com",
		Role:     domain.AdminRoleSuperAdmin,
		Active:   true,
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 24*time.Hour)

	token, expiresAt, err := tm.GenerateToken(testAdmin())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a6a5c1cf-4c38-46a9-9a35-8e1a4f6a9a01", claims.AdminID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, domain.AdminRoleSuperAdmin, claims.Role)
}

func TestTokenExpiryWindow(t *testing.T) {
	issued := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	tm := NewTokenManager("test-secret", 24*time.Hour)
	tm.SetClock(func() time.Time { return issued })

	token, _, err := tm.GenerateToken(testAdmin())
	require.NoError(t, err)

	tm.SetClock(func() time.Time { return issued.Add(23 * time.Hour) })
	_, err = tm.ParseToken(token)
	assert.NoError(t, err, "token should still be valid at T+23h")

	tm.SetClock(func() time.Time { return issued.Add(25 * time.Hour) })
	_, err = tm.ParseToken(token)
	assert.Error(t, err, "token should be rejected at T+25h")
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-one", time.Hour)
	token, _, err := tm.GenerateToken(testAdmin())
	require.NoError(t, err)

	other := NewTokenManager("secret-two", time.Hour)
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	_, err := tm.ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("admin123456", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "admin123456", hash)

	assert.NoError(t, ComparePassword(hash, "admin123456"))
	assert.Error(t, ComparePassword(hash, "wrong-password"))
}
