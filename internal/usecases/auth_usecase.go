package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"nafs-registration.backend/internal/domain/entities"
	domainerrors "nafs-registration.backend/internal/domain/errors"
	"nafs-registration.backend/internal/domain/repositories"
	"nafs-registration.backend/pkg/crypto"
	"nafs-registration.backend/pkg/jwt"
)

// AuthUsecase handles admin and school authentication
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	regRepo    repositories.RegistrationRepository
	jwtService *jwt.JWTService
	setupKey   string
}

// NewAuthUsecase creates a new auth usecase. setupKey guards first-time
// admin creation; when empty, admin setup is disabled.
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	regRepo repositories.RegistrationRepository,
	jwtService *jwt.JWTService,
	setupKey string,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		regRepo:    regRepo,
		jwtService: jwtService,
		setupKey:   setupKey,
	}
}

// Login authenticates a user of the given role and returns tokens.
// Role acts as a gate so a school credential cannot enter the admin
// dashboard and vice versa.
func (u *AuthUsecase) Login(ctx context.Context, role entities.UserRole, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Role != role || !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role), user.RegistrationID.String)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// SchoolSignup creates a school account against a completed school
// registration. The chosen email must match the registration's contact
// email.
func (u *AuthUsecase) SchoolSignup(ctx context.Context, input *entities.SchoolSignupInput) (*entities.AuthResponse, error) {
	reg, err := u.regRepo.GetByID(ctx, input.RegistrationID)
	if err != nil {
		return nil, err
	}
	if reg.Category != entities.CategorySchool {
		return nil, domainerrors.NewError("registration is not a school registration", domainerrors.ErrInvalidInput)
	}
	if reg.Status != entities.StatusCompleted {
		return nil, domainerrors.NewError("payment not completed yet", domainerrors.ErrInvalidInput)
	}
	if reg.Data.ContactEmail == "" || !strings.EqualFold(reg.Data.ContactEmail, input.Email) {
		return nil, domainerrors.NewError("email does not match registration contact email", domainerrors.ErrInvalidInput)
	}

	if _, err := u.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.NewError("an account with this email already exists", domainerrors.ErrAlreadyExists)
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entities.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         entities.UserRoleSchool,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	user.SchoolName.SetValid(reg.Data.SchoolName)
	user.RegistrationID.SetValid(reg.ID)

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role), reg.ID)
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// AdminSetup creates the first admin account, guarded by the deployment
// setup key
func (u *AuthUsecase) AdminSetup(ctx context.Context, input *entities.AdminSetupInput) (*entities.AuthResponse, error) {
	if u.setupKey == "" || input.SetupKey != u.setupKey {
		return nil, domainerrors.Forbidden("invalid setup key")
	}

	if _, err := u.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.NewError("an account with this email already exists", domainerrors.ErrAlreadyExists)
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	name := input.Name
	if name == "" {
		name = "Admin"
	}

	now := time.Now()
	user := &entities.User{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         entities.UserRoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role), "")
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// ResetPassword replaces the password of an existing account of the
// given role. The reset endpoints are unauthenticated, so ownership is
// proven per role: admins must present the deployment setup key,
// schools must name the completed registration whose contact email
// matches the account being reset.
func (u *AuthUsecase) ResetPassword(ctx context.Context, role entities.UserRole, input *entities.ResetPasswordInput) error {
	switch role {
	case entities.UserRoleAdmin:
		if u.setupKey == "" || input.SetupKey != u.setupKey {
			return domainerrors.Forbidden("invalid setup key")
		}
	case entities.UserRoleSchool:
		if input.RegistrationID == "" {
			return domainerrors.NewError("registration is required", domainerrors.ErrInvalidInput)
		}
		reg, err := u.regRepo.GetByID(ctx, input.RegistrationID)
		if err != nil {
			return err
		}
		if reg.Category != entities.CategorySchool {
			return domainerrors.NewError("registration is not a school registration", domainerrors.ErrInvalidInput)
		}
		if reg.Status != entities.StatusCompleted {
			return domainerrors.NewError("payment not completed yet", domainerrors.ErrInvalidInput)
		}
		if reg.Data.ContactEmail == "" || !strings.EqualFold(reg.Data.ContactEmail, input.Email) {
			return domainerrors.NewError("email does not match registration contact email", domainerrors.ErrInvalidInput)
		}
	}

	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return err
	}
	if user.Role != role {
		return domainerrors.Forbidden("account role mismatch")
	}

	passwordHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	return u.userRepo.UpdatePassword(ctx, input.Email, passwordHash)
}

// GetUserByID gets a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}
