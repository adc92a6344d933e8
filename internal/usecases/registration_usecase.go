package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"nafs-registration.backend/internal/domain/entities"
	domainerrors "nafs-registration.backend/internal/domain/errors"
	"nafs-registration.backend/internal/domain/gateway"
	"nafs-registration.backend/internal/domain/repositories"
	"nafs-registration.backend/internal/pricing"
	"nafs-registration.backend/pkg/logger"
	"nafs-registration.backend/pkg/utils"
)

// RegistrationUsecase orchestrates the registration payment lifecycle:
// create pending, verify with the gateway, transition to a terminal
// state exactly once.
type RegistrationUsecase struct {
	regRepo      repositories.RegistrationRepository
	gateway      gateway.PaymentGateway
	engine       *pricing.Engine
	provisioning *ProvisioningUsecase
}

// NewRegistrationUsecase creates a new registration usecase
func NewRegistrationUsecase(
	regRepo repositories.RegistrationRepository,
	gw gateway.PaymentGateway,
	engine *pricing.Engine,
	provisioning *ProvisioningUsecase,
) *RegistrationUsecase {
	return &RegistrationUsecase{
		regRepo:      regRepo,
		gateway:      gw,
		engine:       engine,
		provisioning: provisioning,
	}
}

func validateInput(category entities.RegistrationCategory, input *entities.CreateRegistrationInput) error {
	switch category {
	case entities.CategorySchool:
		if input.ContactEmail == "" {
			return domainerrors.NewError("contactEmail is required for school registrations", domainerrors.ErrInvalidInput)
		}
		if input.SchoolName == "" {
			return domainerrors.NewError("schoolName is required for school registrations", domainerrors.ErrInvalidInput)
		}
		if input.TotalStudents < 1 {
			return domainerrors.NewError("totalStudents must be at least 1", domainerrors.ErrInvalidInput)
		}
	case entities.CategoryUniversity, entities.CategoryGeneral:
		if input.Email == "" {
			return domainerrors.NewError("email is required", domainerrors.ErrInvalidInput)
		}
	default:
		return domainerrors.NewError("unknown registration category", domainerrors.ErrInvalidInput)
	}
	return nil
}

func buildData(category entities.RegistrationCategory, input *entities.CreateRegistrationInput, discount int) entities.RegistrationData {
	switch category {
	case entities.CategorySchool:
		return entities.RegistrationData{
			SchoolName:      input.SchoolName,
			ContactName:     input.ContactName,
			ContactEmail:    input.ContactEmail,
			ContactPhone:    input.ContactPhone,
			StudentNames:    input.StudentNames,
			TotalStudents:   input.TotalStudents,
			DiscountPercent: discount,
		}
	case entities.CategoryUniversity:
		return entities.RegistrationData{
			FirstName:      input.FirstName,
			LastName:       input.LastName,
			Email:          input.Email,
			UniversityName: input.UniversityName,
			DegreeLevel:    input.DegreeLevel,
		}
	default:
		return entities.RegistrationData{
			FirstName:  input.FirstName,
			LastName:   input.LastName,
			Email:      input.Email,
			Phone:      input.Phone,
			Profession: input.Profession,
		}
	}
}

// Create validates the input, prices the registration once, authorizes
// payment with the gateway, and only then persists the pending row.
// A gateway failure leaves no registration behind.
func (u *RegistrationUsecase) Create(ctx context.Context, input *entities.CreateRegistrationInput) (*entities.CreateRegistrationResponse, error) {
	category := entities.RegistrationCategory(strings.ToLower(input.Category))
	if !category.Valid() {
		return nil, domainerrors.NewError("unknown registration category", domainerrors.ErrInvalidInput)
	}
	if err := validateInput(category, input); err != nil {
		return nil, err
	}

	var amount int64
	var discount int
	if category == entities.CategorySchool {
		quote, err := u.engine.SchoolPrice(input.TotalStudents)
		if err != nil {
			return nil, err
		}
		amount = quote.Total
		discount = quote.DiscountPercent
	} else {
		fixed, err := u.engine.IndividualPrice(category)
		if err != nil {
			return nil, err
		}
		amount = fixed
	}

	id, err := utils.NewRegistrationID()
	if err != nil {
		return nil, err
	}
	reference, err := utils.NewPaymentReference("NAFS_" + string(category))
	if err != nil {
		return nil, err
	}

	data := buildData(category, input, discount)

	auth, err := u.gateway.Initialize(ctx, gateway.InitializeParams{
		Email:       data.ContactAddress(),
		Amount:      amount,
		Reference:   reference,
		Description: fmt.Sprintf("NAFS Registration - %s", category),
		Metadata: map[string]interface{}{
			"registrationId": id,
			"category":       string(category),
			"totalStudents":  maxInt(input.TotalStudents, 1),
		},
	})
	if err != nil {
		logger.Error(ctx, "Payment authorization failed", zap.String("registration_id", id), zap.Error(err))
		return nil, err
	}

	now := time.Now()
	reg := &entities.Registration{
		ID:        id,
		Category:  category,
		Reference: reference,
		Amount:    amount,
		Status:    entities.StatusPending,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	reg.GatewayReference.SetValid(auth.Reference)
	reg.GatewayAccessCode.SetValid(auth.AccessCode)

	if err := u.regRepo.Create(ctx, reg); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Registration created",
		zap.String("registration_id", id),
		zap.String("category", string(category)),
		zap.Int64("amount", amount),
	)

	return &entities.CreateRegistrationResponse{
		RegistrationID:   id,
		Reference:        reference,
		Amount:           amount,
		DiscountPercent:  discount,
		AuthorizationURL: auth.AuthorizationURL,
		AccessCode:       auth.AccessCode,
	}, nil
}

// Confirm verifies the gateway transaction for the reference and applies
// the terminal transition. A registration already in a terminal state is
// returned unchanged so duplicate gateway callbacks are harmless.
func (u *RegistrationUsecase) Confirm(ctx context.Context, reference string) (*entities.Registration, error) {
	reg, err := u.regRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	if reg.Status.IsTerminal() {
		return reg, nil
	}

	verified, err := u.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if verified {
		err = u.regRepo.MarkCompleted(ctx, reg.ID, now)
	} else {
		err = u.regRepo.MarkFailed(ctx, reg.ID, now)
	}
	if err != nil {
		// A concurrent confirm won the transition; fall through to the
		// idempotent read below.
		if !errors.Is(err, domainerrors.ErrConflict) {
			return nil, err
		}
	}

	reg, err = u.regRepo.GetByID(ctx, reg.ID)
	if err != nil {
		return nil, err
	}

	if verified && reg.Category == entities.CategorySchool && reg.Status == entities.StatusCompleted {
		// Best effort: a provisioning failure must never turn a verified
		// payment into a reported failure.
		if _, err := u.provisioning.ProvisionSchoolAccount(ctx, reg); err != nil {
			logger.Error(ctx, "School account provisioning failed",
				zap.String("registration_id", reg.ID), zap.Error(err))
		} else if fresh, err := u.regRepo.GetByID(ctx, reg.ID); err == nil {
			reg = fresh
		}
	}

	logger.Info(ctx, "Registration confirmed",
		zap.String("registration_id", reg.ID),
		zap.String("status", string(reg.Status)),
	)
	return reg, nil
}

// Lookup resolves a registration by exactly one of ID, reference, or
// contact email. Email and reference matching are case-insensitive.
func (u *RegistrationUsecase) Lookup(ctx context.Context, query *entities.LookupQuery) (*entities.RegistrationSummary, error) {
	var reg *entities.Registration
	var err error

	switch {
	case query.ID != "":
		reg, err = u.regRepo.GetByID(ctx, query.ID)
	case query.Reference != "":
		reg, err = u.regRepo.GetByReference(ctx, query.Reference)
	case query.Email != "":
		reg, err = u.regRepo.GetByEmail(ctx, query.Email)
	default:
		return nil, domainerrors.NewError("lookup requires an id, reference, or email", domainerrors.ErrInvalidInput)
	}
	if err != nil {
		return nil, err
	}
	return reg.Summary(), nil
}

// GetByID returns the full registration record
func (u *RegistrationUsecase) GetByID(ctx context.Context, id string) (*entities.Registration, error) {
	return u.regRepo.GetByID(ctx, id)
}

// List returns registrations for the admin dashboard, newest first
func (u *RegistrationUsecase) List(ctx context.Context, limit, offset int) ([]*entities.Registration, int, error) {
	return u.regRepo.List(ctx, limit, offset)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
