package filestore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"nafs-registration.backend/internal/domain/entities"
	domainerrors "nafs-registration.backend/internal/domain/errors"
)

// UserStore is a JSON-file-backed UserRepository
type UserStore struct {
	mu   sync.Mutex
	path string
}

// NewUserStore creates a file store rooted at dataDir
func NewUserStore(dataDir string) (*UserStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &UserStore{path: filepath.Join(dataDir, "users.json")}, nil
}

func (s *UserStore) load() ([]*entities.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var users []*entities.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserStore) save(users []*entities.User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Create creates a new user; email uniqueness is enforced here since
// there is no database constraint to lean on
func (s *UserStore) Create(_ context.Context, user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}
	for _, existing := range users {
		if strings.EqualFold(existing.Email, user.Email) {
			return domainerrors.ErrAlreadyExists
		}
	}
	clone := *user
	return s.save(append(users, &clone))
}

// GetByID gets a user by ID
func (s *UserStore) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

// GetByEmail gets a user by email, case-insensitively
func (s *UserStore) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

// UpdatePassword replaces the password hash for the email
func (s *UserStore) UpdatePassword(_ context.Context, email, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}
	for _, user := range users {
		if strings.EqualFold(user.Email, email) {
			user.PasswordHash = passwordHash
			user.UpdatedAt = time.Now()
			return s.save(users)
		}
	}
	return domainerrors.ErrNotFound
}
