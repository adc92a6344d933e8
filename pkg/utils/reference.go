package utils

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	randomRead = rand.Read
	timeNow    = time.Now
)

func randomSuffix(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate reference suffix: %w", err)
	}
	for i, b := range bytes {
		bytes[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return string(bytes), nil
}

// NewRegistrationID generates a registration identifier of the form
// REG-<unix-millis>-<random>.
func NewRegistrationID() (string, error) {
	suffix, err := randomSuffix(9)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("REG-%d-%s", timeNow().UnixMilli(), suffix), nil
}

// NewPaymentReference generates a gateway-visible payment reference of
// the form <PREFIX>_<unix-millis>_<random>. The prefix carries the
// registration category, e.g. NAFS_SCHOOL.
func NewPaymentReference(prefix string) (string, error) {
	suffix, err := randomSuffix(6)
	if err != nil {
		return "", err
	}
	if prefix == "" {
		prefix = "NAFS"
	}
	return fmt.Sprintf("%s_%d_%s", strings.ToUpper(prefix), timeNow().UnixMilli(), suffix), nil
}
