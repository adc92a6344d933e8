package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name           string    `gorm:"type:varchar(255)"`
	PasswordHash   string    `gorm:"type:varchar(255);not null"`
	Role           string    `gorm:"type:varchar(20);not null;index"`
	SchoolName     *string   `gorm:"type:varchar(255)"`
	RegistrationID *string   `gorm:"type:varchar(64);index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
