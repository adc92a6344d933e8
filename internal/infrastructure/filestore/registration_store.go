package filestore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/volatiletech/null/v8"
	"nafs-registration.backend/internal/domain/entities"
	domainerrors "nafs-registration.backend/internal/domain/errors"
)

// RegistrationStore is a JSON-file-backed RegistrationRepository. All
// registrations live in one file under the data directory; a mutex
// serializes access, which also makes terminal transitions atomic.
type RegistrationStore struct {
	mu   sync.Mutex
	path string
}

// NewRegistrationStore creates a file store rooted at dataDir
func NewRegistrationStore(dataDir string) (*RegistrationStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &RegistrationStore{path: filepath.Join(dataDir, "registrations.json")}, nil
}

func (s *RegistrationStore) load() ([]*entities.Registration, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var regs []*entities.Registration
	if err := json.Unmarshal(data, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

func (s *RegistrationStore) save(regs []*entities.Registration) error {
	data, err := json.MarshalIndent(regs, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Create appends a new registration
func (s *RegistrationStore) Create(_ context.Context, reg *entities.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	regs, err := s.load()
	if err != nil {
		return err
	}
	for _, existing := range regs {
		if existing.ID == reg.ID || strings.EqualFold(existing.Reference, reg.Reference) {
			return domainerrors.ErrAlreadyExists
		}
	}
	clone := *reg
	return s.save(append(regs, &clone))
}

// GetByID gets a registration by ID
func (s *RegistrationStore) GetByID(_ context.Context, id string) (*entities.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	regs, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, reg := range regs {
		if reg.ID == id {
			clone := *reg
			return &clone, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

// GetByReference matches the reference or gateway reference,
// case-insensitively
func (s *RegistrationStore) GetByReference(_ context.Context, reference string) (*entities.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	regs, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, reg := range regs {
		if strings.EqualFold(reg.Reference, reference) ||
			(reg.GatewayReference.Valid && strings.EqualFold(reg.GatewayReference.String, reference)) {
			clone := *reg
			return &clone, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

// GetByEmail returns the most recently created registration whose
// payload email or contact email matches, case-insensitively
func (s *RegistrationStore) GetByEmail(_ context.Context, email string) (*entities.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	regs, err := s.load()
	if err != nil {
		return nil, err
	}

	var match *entities.Registration
	for _, reg := range regs {
		if email == "" {
			continue
		}
		if strings.EqualFold(reg.Data.Email, email) || strings.EqualFold(reg.Data.ContactEmail, email) {
			if match == nil || reg.CreatedAt.After(match.CreatedAt) {
				match = reg
			}
		}
	}
	if match == nil {
		return nil, domainerrors.ErrNotFound
	}
	clone := *match
	return &clone, nil
}

// MarkCompleted transitions a pending registration to completed
func (s *RegistrationStore) MarkCompleted(ctx context.Context, id string, verifiedAt time.Time) error {
	return s.markTerminal(id, entities.StatusCompleted, verifiedAt)
}

// MarkFailed transitions a pending registration to failed
func (s *RegistrationStore) MarkFailed(ctx context.Context, id string, failedAt time.Time) error {
	return s.markTerminal(id, entities.StatusFailed, failedAt)
}

func (s *RegistrationStore) markTerminal(id string, status entities.RegistrationStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	regs, err := s.load()
	if err != nil {
		return err
	}
	for _, reg := range regs {
		if reg.ID != id {
			continue
		}
		if reg.Status != entities.StatusPending {
			return domainerrors.ErrConflict
		}
		reg.Status = status
		if status == entities.StatusCompleted {
			reg.VerifiedAt = null.TimeFrom(at)
		} else {
			reg.FailedAt = null.TimeFrom(at)
		}
		reg.UpdatedAt = time.Now()
		return s.save(regs)
	}
	return domainerrors.ErrNotFound
}

// SetTempPassword appends the one-time credential to the payload
func (s *RegistrationStore) SetTempPassword(_ context.Context, id string, tempPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	regs, err := s.load()
	if err != nil {
		return err
	}
	for _, reg := range regs {
		if reg.ID != id {
			continue
		}
		reg.Data.TempPassword = null.StringFrom(tempPassword)
		reg.UpdatedAt = time.Now()
		return s.save(regs)
	}
	return domainerrors.ErrNotFound
}

// List lists registrations newest first with pagination
func (s *RegistrationStore) List(_ context.Context, limit, offset int) ([]*entities.Registration, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	regs, err := s.load()
	if err != nil {
		return nil, 0, err
	}

	sort.Slice(regs, func(i, j int) bool {
		return regs[i].CreatedAt.After(regs[j].CreatedAt)
	})

	total := len(regs)
	if limit > 0 {
		if offset >= total {
			return nil, total, nil
		}
		end := offset + limit
		if end > total {
			end = total
		}
		regs = regs[offset:end]
	}

	out := make([]*entities.Registration, 0, len(regs))
	for _, reg := range regs {
		clone := *reg
		out = append(out, &clone)
	}
	return out, total, nil
}
