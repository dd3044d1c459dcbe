package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidhant-sriv/rentease-api/models"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("s3cret", time.Minute, time.Hour)
	u := &models.User{ID: 42, Role: models.RoleLandlord}

	pair, err := issuer.Issue(u)
	require.NoError(t, err)

	claims, err := issuer.Parse(pair.AccessToken, TokenAccess)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, models.RoleLandlord, claims.Role)

	_, err = issuer.Parse(pair.AccessToken, TokenRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Parse(pair.RefreshToken, TokenRefresh)
	assert.NoError(t, err)
}

func TestTokenRejectsOtherSecret(t *testing.T) {
	pair, err := NewTokenIssuer("one", time.Minute, time.Hour).Issue(&models.User{ID: 1, Role: models.RoleTenant})
	require.NoError(t, err)

	_, err = NewTokenIssuer("two", time.Minute, time.Hour).Parse(pair.AccessToken, TokenAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpiry(t *testing.T) {
	issuer := NewTokenIssuer("s3cret", time.Minute, time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }

	pair, err := issuer.Issue(&models.User{ID: 7, Role: models.RoleTenant})
	require.NoError(t, err)

	_, err = issuer.Parse(pair.AccessToken, TokenAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = issuer.Parse(pair.RefreshToken, TokenRefresh)
	assert.NoError(t, err, "refresh token outlives the access token")
}
