package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// RegistrationCategory represents the registration category
type RegistrationCategory string

const (
	CategorySchool     RegistrationCategory = "school"
	CategoryUniversity RegistrationCategory = "university"
	CategoryGeneral    RegistrationCategory = "general"
)

// Valid reports whether the category is one of the known categories
func (c RegistrationCategory) Valid() bool {
	switch c {
	case CategorySchool, CategoryUniversity, CategoryGeneral:
		return true
	}
	return false
}

// RegistrationStatus represents the payment lifecycle status
type RegistrationStatus string

const (
	StatusPending   RegistrationStatus = "pending"
	StatusCompleted RegistrationStatus = "completed"
	StatusFailed    RegistrationStatus = "failed"
)

// IsTerminal reports whether no further transition is permitted
func (s RegistrationStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// RegistrationData holds the category-specific payload. Exactly one
// category's field set is populated, validated at the boundary.
// TempPassword is appended after a school payment completes.
type RegistrationData struct {
	// school
	SchoolName      string   `json:"schoolName,omitempty"`
	ContactName     string   `json:"contactName,omitempty"`
	ContactEmail    string   `json:"contactEmail,omitempty"`
	ContactPhone    string   `json:"contactPhone,omitempty"`
	StudentNames    []string `json:"studentNames,omitempty"`
	TotalStudents   int      `json:"totalStudents,omitempty"`
	DiscountPercent int      `json:"discountPercent,omitempty"`

	// university
	UniversityName string `json:"universityName,omitempty"`
	DegreeLevel    string `json:"degreeLevel,omitempty"`

	// individual (university and general)
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Profession string `json:"profession,omitempty"`

	TempPassword null.String `json:"tempPassword,omitempty"`
}

// ContactAddress returns the email the registration can be reached at
func (d RegistrationData) ContactAddress() string {
	if d.ContactEmail != "" {
		return d.ContactEmail
	}
	return d.Email
}

// Registration represents one applicant's or school's signup record
// with its payment lifecycle. Amount is in whole Naira, fixed at
// creation by the pricing engine and never recomputed.
type Registration struct {
	ID                string               `json:"id"`
	Category          RegistrationCategory `json:"category"`
	Reference         string               `json:"reference"`
	Amount            int64                `json:"amount"`
	Status            RegistrationStatus   `json:"status"`
	GatewayReference  null.String          `json:"gatewayReference,omitempty"`
	GatewayAccessCode null.String          `json:"gatewayAccessCode,omitempty"`
	Data              RegistrationData     `json:"data"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
	VerifiedAt        null.Time            `json:"verifiedAt,omitempty"`
	FailedAt          null.Time            `json:"failedAt,omitempty"`
}

// CreateRegistrationInput represents input for creating a registration.
// Category decides which of the payload field groups is required.
type CreateRegistrationInput struct {
	Category string `json:"category" binding:"required"`

	// school
	SchoolName    string   `json:"schoolName"`
	ContactName   string   `json:"contactName"`
	ContactEmail  string   `json:"contactEmail"`
	ContactPhone  string   `json:"contactPhone"`
	StudentNames  []string `json:"studentNames"`
	TotalStudents int      `json:"totalStudents"`

	// university
	UniversityName string `json:"universityName"`
	DegreeLevel    string `json:"degreeLevel"`

	// individual
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Profession string `json:"profession"`
}

// CreateRegistrationResponse represents the response for registration creation
type CreateRegistrationResponse struct {
	RegistrationID   string `json:"registrationId"`
	Reference        string `json:"reference"`
	Amount           int64  `json:"amount"`
	DiscountPercent  int    `json:"discountPercent"`
	AuthorizationURL string `json:"authorizationUrl"`
	AccessCode       string `json:"accessCode"`
}

// LookupQuery identifies a registration by exactly one of its keys
type LookupQuery struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	Email     string `json:"email"`
}

// RegistrationSummary is the public view returned by lookups
type RegistrationSummary struct {
	ID           string               `json:"id"`
	Reference    string               `json:"reference"`
	Category     RegistrationCategory `json:"category"`
	Status       RegistrationStatus   `json:"status"`
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Amount       int64                `json:"amount"`
	CreatedAt    time.Time            `json:"createdAt"`
	TempPassword null.String          `json:"tempPassword,omitempty"`
}

// Summary builds the public lookup view of the registration
func (r *Registration) Summary() *RegistrationSummary {
	name := r.Data.SchoolName
	if name == "" {
		name = r.Data.ContactName
	}
	if r.Category != CategorySchool {
		name = r.Data.FirstName
		if r.Data.LastName != "" {
			if name != "" {
				name += " "
			}
			name += r.Data.LastName
		}
	}

	return &RegistrationSummary{
		ID:           r.ID,
		Reference:    r.Reference,
		Category:     r.Category,
		Status:       r.Status,
		Name:         name,
		Email:        r.Data.ContactAddress(),
		Amount:       r.Amount,
		CreatedAt:    r.CreatedAt,
		TempPassword: r.Data.TempPassword,
	}
}
