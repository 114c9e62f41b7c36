package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	userID := uuid.New()
	token, err := GenerateAccessToken("jwt-secret", userID, "organizer@rite.party", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateAndParseToken("jwt-secret", token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "organizer@rite.party", claims.Email)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken("jwt-secret", uuid.New(), "a@b.c", time.Hour)
	require.NoError(t, err)

	_, err = ValidateAndParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestAccessTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken("jwt-secret", uuid.New(), "a@b.c", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateAndParseToken("jwt-secret", token)
	assert.Error(t, err)
}
