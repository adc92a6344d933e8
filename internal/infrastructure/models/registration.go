package models

import (
	"time"
)

// Registration is the GORM model for a registration row. Data holds the
// category-specific payload as a JSON document.
type Registration struct {
	ID                string  `gorm:"type:varchar(64);primaryKey"`
	Category          string  `gorm:"type:varchar(20);not null;index"`
	Reference         string  `gorm:"type:varchar(100);not null;uniqueIndex"`
	Amount            int64   `gorm:"not null"`
	Status            string  `gorm:"type:varchar(20);not null;index"`
	GatewayReference  *string `gorm:"type:varchar(100);index"`
	GatewayAccessCode *string `gorm:"type:varchar(100)"`
	Data              string  `gorm:"type:text;not null;default:'{}'"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	VerifiedAt        *time.Time
	FailedAt          *time.Time
}
