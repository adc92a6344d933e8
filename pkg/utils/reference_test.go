package utils

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withFixedClock(t *testing.T, at time.Time) {
	t.Helper()
	original := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = original })
}

func TestNewRegistrationID_Format(t *testing.T) {
	withFixedClock(t, time.UnixMilli(1756600000000))

	id, err := NewRegistrationID()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^REG-1756600000000-[A-Z0-9]{9}$`), id)
}

func TestNewPaymentReference_Format(t *testing.T) {
	withFixedClock(t, time.UnixMilli(1756600000000))

	ref, err := NewPaymentReference("nafs_school")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^NAFS_SCHOOL_1756600000000_[A-Z0-9]{6}$`), ref)

	// Empty prefix falls back to the platform default.
	ref, err = NewPaymentReference("")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^NAFS_1756600000000_[A-Z0-9]{6}$`), ref)
}

func TestReferences_AreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := NewRegistrationID()
		require.NoError(t, err)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestReferences_RandomFailure(t *testing.T) {
	original := randomRead
	randomRead = func([]byte) (int, error) {
		return 0, errors.New("entropy exhausted")
	}
	t.Cleanup(func() { randomRead = original })

	_, err := NewRegistrationID()
	assert.Error(t, err)

	_, err = NewPaymentReference("NAFS")
	assert.Error(t, err)
}
