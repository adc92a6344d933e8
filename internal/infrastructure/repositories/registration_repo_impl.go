package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"nafs-registration.backend/internal/domain/entities"
	domainerrors "nafs-registration.backend/internal/domain/errors"
	"nafs-registration.backend/internal/infrastructure/models"
)

func equalFold(a, b string) bool {
	return a != "" && strings.EqualFold(a, b)
}

// RegistrationRepository implements registration data operations on GORM
type RegistrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(db *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create creates a new registration
func (r *RegistrationRepository) Create(ctx context.Context, reg *entities.Registration) error {
	data, err := json.Marshal(reg.Data)
	if err != nil {
		return err
	}

	m := &models.Registration{
		ID:                reg.ID,
		Category:          string(reg.Category),
		Reference:         reg.Reference,
		Amount:            reg.Amount,
		Status:            string(reg.Status),
		GatewayReference:  reg.GatewayReference.Ptr(),
		GatewayAccessCode: reg.GatewayAccessCode.Ptr(),
		Data:              string(data),
		CreatedAt:         reg.CreatedAt,
		UpdatedAt:         reg.UpdatedAt,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID gets a registration by ID
func (r *RegistrationRepository) GetByID(ctx context.Context, id string) (*entities.Registration, error) {
	var m models.Registration
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

// GetByReference gets a registration by its reference or gateway
// reference, case-insensitively
func (r *RegistrationRepository) GetByReference(ctx context.Context, reference string) (*entities.Registration, error) {
	var m models.Registration
	err := r.db.WithContext(ctx).
		Where("UPPER(reference) = UPPER(?) OR UPPER(COALESCE(gateway_reference, '')) = UPPER(?)", reference, reference).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

// GetByEmail gets the most recent registration whose payload email or
// contact email matches, case-insensitively. The payload is a JSON text
// column, so the match scans candidate rows instead of using a JSON
// operator; registration volume is small enough for that to hold.
func (r *RegistrationRepository) GetByEmail(ctx context.Context, email string) (*entities.Registration, error) {
	var ms []models.Registration
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}

	for i := range ms {
		reg, err := r.toEntity(&ms[i])
		if err != nil {
			continue
		}
		if equalFold(reg.Data.Email, email) || equalFold(reg.Data.ContactEmail, email) {
			return reg, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

// MarkCompleted transitions a pending registration to completed. The
// status guard in the WHERE clause makes the transition atomic against
// a concurrent confirm.
func (r *RegistrationRepository) MarkCompleted(ctx context.Context, id string, verifiedAt time.Time) error {
	return r.markTerminal(ctx, id, map[string]interface{}{
		"status":      string(entities.StatusCompleted),
		"verified_at": verifiedAt,
		"updated_at":  time.Now(),
	})
}

// MarkFailed transitions a pending registration to failed
func (r *RegistrationRepository) MarkFailed(ctx context.Context, id string, failedAt time.Time) error {
	return r.markTerminal(ctx, id, map[string]interface{}{
		"status":     string(entities.StatusFailed),
		"failed_at":  failedAt,
		"updated_at": time.Now(),
	})
}

func (r *RegistrationRepository) markTerminal(ctx context.Context, id string, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Registration{}).
		Where("id = ? AND status = ?", id, string(entities.StatusPending)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing row from one already finalized.
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Registration{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrConflict
	}
	return nil
}

// SetTempPassword appends the one-time credential to the payload
func (r *RegistrationRepository) SetTempPassword(ctx context.Context, id string, tempPassword string) error {
	reg, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	reg.Data.TempPassword = null.StringFrom(tempPassword)
	data, err := json.Marshal(reg.Data)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&models.Registration{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"data":       string(data),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists registrations newest first with pagination
func (r *RegistrationRepository) List(ctx context.Context, limit, offset int) ([]*entities.Registration, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Registration{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var ms []models.Registration
	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var regs []*entities.Registration
	for i := range ms {
		reg, err := r.toEntity(&ms[i])
		if err != nil {
			return nil, 0, err
		}
		regs = append(regs, reg)
	}
	return regs, int(total), nil
}

func (r *RegistrationRepository) toEntity(m *models.Registration) (*entities.Registration, error) {
	var data entities.RegistrationData
	if m.Data != "" {
		if err := json.Unmarshal([]byte(m.Data), &data); err != nil {
			return nil, err
		}
	}

	return &entities.Registration{
		ID:                m.ID,
		Category:          entities.RegistrationCategory(m.Category),
		Reference:         m.Reference,
		Amount:            m.Amount,
		Status:            entities.RegistrationStatus(m.Status),
		GatewayReference:  null.StringFromPtr(m.GatewayReference),
		GatewayAccessCode: null.StringFromPtr(m.GatewayAccessCode),
		Data:              data,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
		VerifiedAt:        null.TimeFromPtr(m.VerifiedAt),
		FailedAt:          null.TimeFromPtr(m.FailedAt),
	}, nil
}
