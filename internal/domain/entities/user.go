package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleSchool UserRole = "school"
)

// User represents a login credential bound to one role. School users
// carry a back-reference to the registration that spawned them.
type User struct {
	ID             uuid.UUID   `json:"id"`
	Email          string      `json:"email"`
	Name           string      `json:"name,omitempty"`
	PasswordHash   string      `json:"-"`
	Role           UserRole    `json:"role"`
	SchoolName     null.String `json:"schoolName,omitempty"`
	RegistrationID null.String `json:"registrationId,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// LoginInput represents input for admin or school login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SchoolSignupInput represents explicit signup against a completed
// school registration
type SchoolSignupInput struct {
	RegistrationID string `json:"registration" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
}

// AdminSetupInput represents first-time admin creation, guarded by a
// deployment setup key
type AdminSetupInput struct {
	SetupKey string `json:"setupKey" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

// ResetPasswordInput represents a password reset for an existing
// account. The endpoints are unauthenticated, so each role carries its
// own proof of ownership: admin resets present the deployment setup
// key, school resets name the registration whose contact email is
// being reset.
type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`

	// admin reset
	SetupKey string `json:"setupKey"`

	// school reset
	RegistrationID string `json:"registration"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}
