package repositories

import (
	"context"
	"time"

	"nafs-registration.backend/internal/domain/entities"
)

// RegistrationRepository defines registration data operations.
//
// MarkCompleted and MarkFailed apply a terminal transition only when the
// row is still pending (read-modify-write atomic at the store level).
// They return domain ErrConflict when the row exists but is already
// terminal, and ErrNotFound when it does not exist.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *entities.Registration) error
	GetByID(ctx context.Context, id string) (*entities.Registration, error)
	// GetByReference matches the registration reference or the gateway
	// reference, case-insensitively.
	GetByReference(ctx context.Context, reference string) (*entities.Registration, error)
	// GetByEmail matches the payload email or contact email
	// case-insensitively, returning the most recently created match.
	GetByEmail(ctx context.Context, email string) (*entities.Registration, error)
	MarkCompleted(ctx context.Context, id string, verifiedAt time.Time) error
	MarkFailed(ctx context.Context, id string, failedAt time.Time) error
	// SetTempPassword appends the one-time credential to the payload of a
	// completed registration.
	SetTempPassword(ctx context.Context, id string, tempPassword string) error
	List(ctx context.Context, limit, offset int) ([]*entities.Registration, int, error)
}
