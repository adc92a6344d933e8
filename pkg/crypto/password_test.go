package crypto

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, CheckPassword("s3cret-password", hash))
	assert.False(t, CheckPassword("wrong-password", hash))
	assert.False(t, CheckPassword("s3cret-password", "not-a-hash"))
}

func TestHashPassword_Error(t *testing.T) {
	original := bcryptGenerateFromPassword
	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	defer func() { bcryptGenerateFromPassword = original }()

	_, err := HashPassword("password")
	assert.Error(t, err)
}

func TestGenerateRandomToken(t *testing.T) {
	token, err := GenerateRandomToken(16)
	require.NoError(t, err)
	assert.Len(t, token, 32)

	other, err := GenerateRandomToken(16)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestGenerateTempPassword(t *testing.T) {
	password, err := GenerateTempPassword()
	require.NoError(t, err)
	assert.Len(t, password, tempPasswordLength)

	for _, r := range password {
		assert.True(t, strings.ContainsRune(tempPasswordAlphabet, r),
			"unexpected character %q", r)
	}
}

func TestGenerateTempPassword_RandomFailure(t *testing.T) {
	original := randomRead
	randomRead = func([]byte) (int, error) {
		return 0, errors.New("entropy exhausted")
	}
	defer func() { randomRead = original }()

	_, err := GenerateTempPassword()
	assert.Error(t, err)
}
