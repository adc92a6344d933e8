package filestore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nafs-registration.backend/internal/domain/entities"
	domainerrors "nafs-registration.backend/internal/domain/errors"
)

func newStoredUser(email string) *entities.User {
	now := time.Now()
	user := &entities.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "hash",
		Role:         entities.UserRoleSchool,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	user.RegistrationID.SetValid("REG-1")
	return user
}

func TestUserStore_CreateAndGet(t *testing.T) {
	store, err := NewUserStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	user := newStoredUser("bursar@crescent.example.ng")
	require.NoError(t, store.Create(ctx, user))

	got, err := store.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, "REG-1", got.RegistrationID.String)

	_, err = store.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserStore_EmailUniqueness(t *testing.T) {
	store, err := NewUserStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newStoredUser("bursar@crescent.example.ng")))
	err = store.Create(ctx, newStoredUser("BURSAR@crescent.example.ng"))
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestUserStore_GetByEmail(t *testing.T) {
	store, err := NewUserStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newStoredUser("bursar@crescent.example.ng")))

	got, err := store.GetByEmail(ctx, "Bursar@Crescent.Example.NG")
	require.NoError(t, err)
	assert.Equal(t, "bursar@crescent.example.ng", got.Email)

	_, err = store.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserStore_UpdatePassword(t *testing.T) {
	store, err := NewUserStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	user := newStoredUser("bursar@crescent.example.ng")
	require.NoError(t, store.Create(ctx, user))
	require.NoError(t, store.UpdatePassword(ctx, user.Email, "new-hash"))

	got, err := store.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)

	assert.ErrorIs(t, store.UpdatePassword(ctx, "nobody@example.com", "x"), domainerrors.ErrNotFound)
}
