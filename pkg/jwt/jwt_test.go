package jwt

import (
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	service := NewJWTService("secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	pair, err := service.GenerateTokenPair(userID, "bursar@crescent.example.ng", "school", "REG-1")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := service.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "bursar@crescent.example.ng", claims.Email)
	assert.Equal(t, "school", claims.Role)
	assert.Equal(t, "REG-1", claims.RegistrationID)
}

func TestValidateToken_Expired(t *testing.T) {
	service := NewJWTService("secret", -time.Minute, -time.Minute)
	pair, err := service.GenerateTokenPair(uuid.New(), "a@b.c", "admin", "")
	require.NoError(t, err)

	_, err = service.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	service := NewJWTService("secret", time.Hour, time.Hour)
	pair, err := service.GenerateTokenPair(uuid.New(), "a@b.c", "admin", "")
	require.NoError(t, err)

	other := NewJWTService("other-secret", time.Hour, time.Hour)
	_, err = other.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	service := NewJWTService("secret", time.Hour, time.Hour)
	_, err := service.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSigningMethod(t *testing.T) {
	service := NewJWTService("secret", time.Hour, time.Hour)

	// Unsigned token must be rejected even though it parses.
	token := gojwt.NewWithClaims(gojwt.SigningMethodNone, &Claims{Role: "admin"})
	signed, err := token.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateTokenPair_SignError(t *testing.T) {
	original := signJWTToken
	signJWTToken = func(*gojwt.Token, []byte) (string, error) {
		return "", errors.New("sign failed")
	}
	defer func() { signJWTToken = original }()

	service := NewJWTService("secret", time.Hour, time.Hour)
	_, err := service.GenerateTokenPair(uuid.New(), "a@b.c", "admin", "")
	assert.Error(t, err)
}
