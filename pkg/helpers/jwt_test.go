package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelcove/internal/domain/entity"
)

func testJWT() *JWTManager {
	return NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)
}

func testUser() *entity.User {
	return &entity.User{
		ID:        "11111111-1111-1111-1111-111111111111",
		Email:     "ada@example.com",
		Name:      "Ada",
		AvatarURL: "https://example.com/ada.png",
	}
}

func TestJWTManager_AccessTokenRoundTrip(t *testing.T) {
	m := testJWT()
	u := testUser()

	token, exp, err := m.GenerateAccessToken(u)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := m.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, u.Email, claims.Email)
	assert.Equal(t, u.Name, claims.Name)
	assert.Equal(t, u.AvatarURL, claims.AvatarURL)
}

func TestJWTManager_SecretsAreNotInterchangeable(t *testing.T) {
	m := testJWT()
	u := testUser()

	access, _, err := m.GenerateAccessToken(u)
	require.NoError(t, err)
	refresh, _, err := m.GenerateRefreshToken(u)
	require.NoError(t, err)

	_, err = m.ParseRefreshToken(access)
	assert.Error(t, err)
	_, err = m.ParseAccessToken(refresh)
	assert.Error(t, err)
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", -time.Minute, time.Hour)

	token, _, err := m.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = m.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsTamperedToken(t *testing.T) {
	m := testJWT()

	token, _, err := m.GenerateAccessToken(testUser())
	require.NoError(t, err)

	other := NewJWTManager("different-secret", "refresh-secret", time.Minute, time.Hour)
	_, err = other.ParseAccessToken(token)
	assert.Error(t, err)
}
