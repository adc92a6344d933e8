package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12

	tempPasswordAlphabet = "abcdefghjkmnpqrstuvwxyz23456789"
	tempPasswordLength   = 10
)

var (
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	randomRead                 = rand.Read
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcryptGenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword compares a password with a hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateRandomToken generates a random hex token of the given byte length
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateTempPassword generates a short human-typable temporary password
// used for school account provisioning. Ambiguous characters (0/O, 1/l/i)
// are excluded from the alphabet.
func GenerateTempPassword() (string, error) {
	bytes := make([]byte, tempPasswordLength)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate temp password: %w", err)
	}
	for i, b := range bytes {
		bytes[i] = tempPasswordAlphabet[int(b)%len(tempPasswordAlphabet)]
	}
	return string(bytes), nil
}
