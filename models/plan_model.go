package models

import (
	"time"

	"github.com/google/uuid"
)

type Plan struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name         string    `gorm:"size:100;not null;unique" json:"name"`
	Price        int64     `gorm:"not null" json:"price"`
	DailyQuota   int       `gorm:"not null" json:"daily_quota"`
	ValidityDays int       `gorm:"not null" json:"validity_days"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
