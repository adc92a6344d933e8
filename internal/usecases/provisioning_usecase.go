package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"nafs-registration.backend/internal/domain/entities"
	domainerrors "nafs-registration.backend/internal/domain/errors"
	"nafs-registration.backend/internal/domain/repositories"
	"nafs-registration.backend/pkg/crypto"
	"nafs-registration.backend/pkg/logger"
)

// ProvisioningUsecase creates a school login credential after a school
// registration's payment completes.
type ProvisioningUsecase struct {
	userRepo repositories.UserRepository
	regRepo  repositories.RegistrationRepository
}

// NewProvisioningUsecase creates a new provisioning usecase
func NewProvisioningUsecase(userRepo repositories.UserRepository, regRepo repositories.RegistrationRepository) *ProvisioningUsecase {
	return &ProvisioningUsecase{userRepo: userRepo, regRepo: regRepo}
}

// ProvisionSchoolAccount generates a temporary password, creates a
// school user bound to the registration, and writes the plaintext
// password back onto the registration payload for one-time display.
// An already-existing account for the contact email is returned as-is
// without error so duplicate callbacks never create duplicate users.
func (u *ProvisioningUsecase) ProvisionSchoolAccount(ctx context.Context, reg *entities.Registration) (*entities.User, error) {
	if reg.Category != entities.CategorySchool {
		return nil, domainerrors.NewError("only school registrations get provisioned accounts", domainerrors.ErrInvalidInput)
	}
	if reg.Status != entities.StatusCompleted {
		return nil, domainerrors.NewError("registration payment is not completed", domainerrors.ErrInvalidInput)
	}
	email := reg.Data.ContactEmail
	if email == "" {
		return nil, domainerrors.NewError("registration has no contact email", domainerrors.ErrInvalidInput)
	}

	existing, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		logger.Info(ctx, "School account already exists, skipping provisioning",
			zap.String("registration_id", reg.ID))
		return existing, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	tempPassword, err := crypto.GenerateTempPassword()
	if err != nil {
		return nil, err
	}
	passwordHash, err := crypto.HashPassword(tempPassword)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entities.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         reg.Data.ContactName,
		PasswordHash: passwordHash,
		Role:         entities.UserRoleSchool,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	user.SchoolName.SetValid(reg.Data.SchoolName)
	user.RegistrationID.SetValid(reg.ID)

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			logger.Warn(ctx, "School account created concurrently, skipping",
				zap.String("registration_id", reg.ID))
			return u.userRepo.GetByEmail(ctx, email)
		}
		return nil, err
	}

	// The plaintext is persisted for one-time retrieval by the school
	// contact; see the deployment notes before tightening this.
	if err := u.regRepo.SetTempPassword(ctx, reg.ID, tempPassword); err != nil {
		logger.Error(ctx, "Failed to store temp password on registration",
			zap.String("registration_id", reg.ID), zap.Error(err))
	}

	logger.Info(ctx, "School account provisioned",
		zap.String("registration_id", reg.ID))
	return user, nil
}
