package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectAccessToken(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Minute, time.Hour)

	tok, exp, err := m.GenerateAccessToken(42, []string{"ROLE_MEMBER"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 2*time.Second)

	claims, status := m.InspectAccessToken(tok)
	assert.Equal(t, TokenValid, status)
	assert.Equal(t, int64(42), claims.MemberID)
	assert.Equal(t, []string{"ROLE_MEMBER"}, claims.Roles)
	assert.Equal(t, "42", claims.Subject)

	_, status = m.InspectAccessToken("")
	assert.Equal(t, TokenEmpty, status)

	_, status = m.InspectAccessToken("not.a.token")
	assert.Equal(t, TokenInvalid, status)

	// signed with the refresh secret
	refresh, _, err := m.GenerateRefreshToken(42)
	require.NoError(t, err)
	_, status = m.InspectAccessToken(refresh)
	assert.Equal(t, TokenInvalid, status)

	rc, err := m.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, int64(42), rc.MemberID)
}

func TestInspectExpiredTokenKeepsClaims(t *testing.T) {
	m := NewJWTManager("access", "refresh", -time.Minute, -time.Minute)

	tok, _, err := m.GenerateAccessToken(7, []string{"ROLE_PRESIDENT"})
	require.NoError(t, err)

	claims, status := m.InspectAccessToken(tok)
	assert.Equal(t, TokenExpired, status)
	require.NotNil(t, claims)
	assert.Equal(t, int64(7), claims.MemberID)

	_, err = m.ParseAccessToken(tok)
	assert.Error(t, err)

	other := NewJWTManager("other", "other", -time.Minute, -time.Minute)
	_, status = other.InspectAccessToken(tok)
	assert.Equal(t, TokenInvalid, status, "bad signature wins over expiry")
}

func TestRefreshTokensAreUnique(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Minute, time.Hour)
	a, _, err := m.GenerateRefreshToken(1)
	require.NoError(t, err)
	b, _, err := m.GenerateRefreshToken(1)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
